package changeset

import (
	"github.com/utkarsh5026/HgStore/pkg/common/err"
)

const pkgName = "changeset"

// Error codes for changeset parse failures. All are surfaced to the
// caller; nothing is retried.
const (
	// CodeManifestHashParse indicates line 1 is not a 40-character hex hash
	CodeManifestHashParse = "MANIFEST_HASH_PARSE"

	// CodeTimeLineMalformed indicates line 3 has fewer than two parts or
	// non-numeric time/tz fields
	CodeTimeLineMalformed = "TIME_LINE_MALFORMED"

	// CodeFilePathInvalid indicates a file-list line is not a valid path
	CodeFilePathInvalid = "FILE_PATH_INVALID"

	// CodePrematureEOF indicates the blob ended before the time line
	CodePrematureEOF = "PREMATURE_EOF"
)

func parseErr(code, message string, cause error) error {
	return err.New(pkgName, code, "parse", message, cause)
}
