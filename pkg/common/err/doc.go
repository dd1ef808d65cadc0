// Package err provides the standardized error type used across the project.
//
// All failure taxonomies (parse failures, missing blobs, integrity
// failures) are reported through *err.Error so callers can match on
// machine-readable codes with errors.Is / IsCode while still unwrapping
// the underlying cause with errors.As.
//
// Packages define their own codes where the shared constants don't fit:
//
//	const CodeNodeMissing = "NODE_MISSING"
//
//	return err.New("store", CodeNodeMissing, "get_node", hash.String(), nil)
//
// Checking:
//
//	if err.IsCode(e, store.CodeNodeMissing) {
//	    // fall back to a peer store
//	}
package err
