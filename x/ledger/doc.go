/*
Package ledger defines the asset ledger a custody wallet operates on and a
simulated implementation of it.

The Ledger interface is the only way the wallet engine touches value: it
reads balances, transfers assets and performs calls to external targets.
Every method either succeeds and is final, or fails without any effect.

Bank keeps balances of any number of accounts in a key-value store. There is
no logic in the assets, except that a balance may never go below zero. Calls
to targets move native value and run the Go contract registered for the
target, all inside a savepoint, so a failing contract leaves no trace.
*/
package ledger
