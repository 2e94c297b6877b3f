// Package circulation provides the core types and contracts of the library circulation engine.
//
// It defines the persisted entities (books, users, reservations, loans, fines, audit
// transactions, notifications), the error kinds surfaced to callers, the circulation policy
// constants, and the unit-of-work contract that every storage implementation has to honor.
//
// Key types:
//   - Tx: transactional handle through which all reads and writes of one operation happen
//   - TxRunner: executes a function inside a single atomic transaction
//   - RejectionError: a policy or state-transition rejection (NotFound, Forbidden, BadRequest)
//   - Clock: the injectable source of "now"
//
// Common usage pattern:
//
//	err := store.RunInTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
//		if _, err := tx.LockUser(ctx, userID); err != nil {
//			return err
//		}
//		adjusted, err := tx.AdjustBookCopies(ctx, bookID, circulation.CopiesDelta{Available: -1})
//		if err != nil {
//			return err
//		}
//		if !adjusted {
//			return circulation.BadRequest("book is currently unavailable")
//		}
//		return nil
//	})
//
// The concrete SQL implementation lives in the sqlengine sub-package.
package circulation
