package gconf

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConf struct {
	Owner custody.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	Limit uint64          `protobuf:"varint,2,opt,name=limit,proto3" json:"limit"`
}

func (m *testConf) Reset()         { *m = testConf{} }
func (m *testConf) String() string { return proto.CompactTextString(m) }
func (*testConf) ProtoMessage()    {}

func (m *testConf) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Field("Owner", err, "invalid owner")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	owner := custody.NewAddress([]byte("owner"))

	cases := map[string]struct {
		Conf        *testConf
		WantSaveErr *errors.Error
		WantLoadErr *errors.Error
	}{
		"valid": {
			Conf: &testConf{Owner: owner, Limit: 42},
		},
		"invalid address cannot be saved": {
			Conf:        &testConf{Owner: custody.Address("too short")},
			WantSaveErr: errors.ErrInvalidInput,
			WantLoadErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			err := Save(db, "test", tc.Conf)
			if tc.WantSaveErr != nil {
				require.True(t, tc.WantSaveErr.Is(err), "unexpected save error: %s", err)
			} else {
				require.NoError(t, err)
			}

			var got testConf
			err = Load(db, "test", &got)
			if tc.WantLoadErr != nil {
				require.True(t, tc.WantLoadErr.Is(err), "unexpected load error: %s", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, *tc.Conf, got)
		})
	}
}

func TestInitConfig(t *testing.T) {
	owner := custody.NewAddress([]byte("owner"))
	genesis := func(t *testing.T, conf string) custody.Options {
		t.Helper()
		var opts custody.Options
		require.NoError(t, json.Unmarshal([]byte(conf), &opts))
		return opts
	}

	db := store.MemStore()

	err := InitConfig(db, genesis(t, `{}`), "test", &testConf{})
	assert.True(t, errors.ErrNotFound.Is(err))

	opts := genesis(t, `{"conf": {"test": {"owner": "`+owner.String()+`", "limit": 9}}}`)
	require.NoError(t, InitConfig(db, opts, "test", &testConf{}))

	var got testConf
	require.NoError(t, Load(db, "test", &got))
	assert.Equal(t, testConf{Owner: owner, Limit: 9}, got)

	err = InitConfig(db, opts, "test", &testConf{})
	assert.True(t, errors.ErrDuplicate.Is(err))

	err = InitConfig(db, genesis(t, `{"conf": {"other": {"owner": "zz"}}}`), "other", &testConf{})
	assert.True(t, errors.ErrInvalidInput.Is(err))
}
