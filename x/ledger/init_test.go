package ledger

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/store"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenesis(t *testing.T) {
	addr := custody.NewAddress([]byte("wallet"))

	Convey("Test genesis initialization", t, func() {
		db := store.MemStore()
		gen := Initializer{}
		bucket := NewBalanceBucket()

		Convey("Empty options are fine", func() {
			So(gen.FromGenesis(custody.Options{}, db), ShouldBeNil)
		})

		Convey("Balances are issued", func() {
			genesis := `[{"address": "` + addr.String() + `", "balances": [
				{"asset": "ETH", "amount": 90},
				{"asset": "NATIVE", "amount": 7},
				{"asset": "ETH", "amount": 10}
			]}]`
			err := gen.FromGenesis(custody.Options{"ledger": []byte(genesis)}, db)
			So(err, ShouldBeNil)

			eth, err := bucket.Amount(db, addr, "ETH")
			So(err, ShouldBeNil)
			So(eth, ShouldEqual, 100)

			native, err := bucket.Amount(db, addr, "NATIVE")
			So(err, ShouldBeNil)
			So(native, ShouldEqual, 7)
		})

		Convey("Bad address is rejected", func() {
			genesis := `[{"address": "1234", "balances": []}]`
			err := gen.FromGenesis(custody.Options{"ledger": []byte(genesis)}, db)
			So(err, ShouldNotBeNil)
		})

		Convey("Bad asset is rejected", func() {
			genesis := `[{"address": "` + addr.String() + `", "balances": [{"asset": "a b", "amount": 1}]}]`
			err := gen.FromGenesis(custody.Options{"ledger": []byte(genesis)}, db)
			So(err, ShouldNotBeNil)
		})
	})
}
