/*
Package wallet implements a multi-signature custodial wallet.

A fixed committee of admins governs the wallet. Sensitive operations are
recorded as proposals by the owner: changing the owner, registering assets,
transferring registered assets and invoking arbitrary calls. Admins approve
or reject proposals, and approvals can be rescinded at any time. Once enough
admins approve, anyone can execute the proposal, exactly once.

The owner can also transfer value directly, without committee approval,
bounded by the wallet balance and the limit of the asset policy if there is
one.

Every state transition is recorded in an append only event log that can be
polled with Wallet.Events or followed with Wallet.Subscribe.
*/
package wallet
