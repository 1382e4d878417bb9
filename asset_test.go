package custody_test

import (
	"strings"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidateAsset(t *testing.T) {
	cases := map[string]struct {
		asset   string
		wantErr *errors.Error
	}{
		"ticker":            {asset: "ETH"},
		"lower case ticker": {asset: "eth"},
		"punctuation":       {asset: "USD-C.v2_x"},
		"longest allowed":   {asset: strings.Repeat("A", 32)},
		"empty":             {asset: "", wantErr: errors.ErrEmpty},
		"too long":          {asset: strings.Repeat("A", 33), wantErr: errors.ErrInvalidInput},
		"space not allowed": {asset: "US D", wantErr: errors.ErrInvalidInput},
		"colon not allowed": {asset: "a:b", wantErr: errors.ErrInvalidInput},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := custody.ValidateAsset(tc.asset)
			assert.True(t, tc.wantErr.Is(err), "unexpected error: %v", err)
		})
	}
}
