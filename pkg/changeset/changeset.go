// Package changeset implements the byte-exact codec for changeset
// records (commit metadata).
//
// A changeset blob carries the manifest hash, the user, a time line, the
// touched file list and the free-form comments. Parsing and regeneration
// are exact inverses on serialized form: for any blob b that parses,
// Generate(Parse(b)) reproduces b bit for bit. That property is load
// bearing: the serialized bytes are what the node hash digests, so any
// deviation corrupts the repository.
//
// The user and comments fields are expected to be utf8 in practice, but
// older repositories contain corrupted records, so both are handled as
// opaque bytes here and converted by higher layers as needed.
package changeset

import (
	"bytes"
	"io"
	"strconv"

	"github.com/utkarsh5026/HgStore/pkg/hgpath"
	"github.com/utkarsh5026/HgStore/pkg/node"
)

// Time is the changeset timestamp: seconds-since-epoch plus a timezone
// offset in seconds. Both are opaque to the codec; interpretation is the
// caller's concern.
type Time struct {
	Time uint64
	TZ   int32
}

// Changeset is the structured form of a changeset record.
//
// Wire format:
//
//	<manifest-hash-hex>\n
//	<user>\n
//	<time> <tz>[ <extra>]\n
//	<file>\n ... <file>\n
//	\n
//	<comments>
type Changeset struct {
	// Parents are carried by the surrounding node, not by the blob; they
	// ride along so a parsed changeset is self-contained.
	Parents    node.Parents
	ManifestID node.Hash
	User       []byte
	Time       Time
	Extra      Extra
	Files      []hgpath.Path
	Comments   []byte
}

// NewNull returns the null changeset: no parents, null manifest, all
// byte fields empty. Useful as a sentinel root.
func NewNull() *Changeset {
	return &Changeset{
		Parents:    node.NoParents(),
		ManifestID: node.NullHash(),
		User:       nil,
		Time:       Time{},
		Extra:      Extra{},
		Files:      nil,
		Comments:   nil,
	}
}

// parseTimeLine parses "<time> <tz>[ <extra>]". The extra field is
// optional; its absence means an empty mapping, not an error.
func parseTimeLine(line []byte) (Time, Extra, error) {
	parts := bytes.SplitN(line, []byte{' '}, 3)
	if len(parts) < 2 {
		return Time{}, nil, parseErr(CodeTimeLineMalformed, "not enough parts", nil)
	}

	t, err := strconv.ParseUint(string(parts[0]), 10, 64)
	if err != nil {
		return Time{}, nil, parseErr(CodeTimeLineMalformed, "can't parse time", err)
	}
	tz, err := strconv.ParseInt(string(parts[1]), 10, 32)
	if err != nil {
		return Time{}, nil, parseErr(CodeTimeLineMalformed, "can't parse tz", err)
	}

	extra := Extra{}
	if len(parts) == 3 {
		extra = decodeExtra(parts[2])
	}

	return Time{Time: t, TZ: int32(tz)}, extra, nil
}

// Parse decodes a changeset blob. The parents come from the surrounding
// node record and are attached to the result unchanged.
func Parse(data []byte, parents node.Parents) (*Changeset, error) {
	lines := bytes.Split(data, []byte{'\n'})

	if len(lines) < 1 {
		return nil, parseErr(CodePrematureEOF, "can't get hash", nil)
	}
	manifestid, err := node.FromHexBytes(lines[0])
	if err != nil {
		return nil, parseErr(CodeManifestHashParse, "can't get hash", err)
	}

	if len(lines) < 2 {
		return nil, parseErr(CodePrematureEOF, "can't get user", nil)
	}
	user := make([]byte, len(lines[1]))
	copy(user, lines[1])

	if len(lines) < 3 {
		return nil, parseErr(CodePrematureEOF, "can't get time/extra", nil)
	}
	t, extra, err := parseTimeLine(lines[2])
	if err != nil {
		return nil, err
	}

	// List of files followed by the comments. One file per line, a blank
	// line ends the list; everything after is a single blob we already
	// split on '\n', so glue it back together.
	var files []hgpath.Path
	var comments [][]byte
	doFiles := true
	for _, line := range lines[3:] {
		if doFiles {
			if len(line) == 0 {
				doFiles = false
				continue
			}
			p, err := hgpath.Parse(line)
			if err != nil {
				return nil, parseErr(CodeFilePathInvalid, "invalid path in changelog", err)
			}
			files = append(files, p)
		} else {
			comments = append(comments, line)
		}
	}

	return &Changeset{
		Parents:    parents,
		ManifestID: manifestid,
		User:       user,
		Time:       t,
		Extra:      extra,
		Files:      files,
		Comments:   bytes.Join(comments, []byte{'\n'}),
	}, nil
}

// Generate serializes the changeset. This is the counterpart to Parse
// and emits the same bytes Mercurial itself would, bit for bit, since
// the output is what the node hash digests.
func (cs *Changeset) Generate(w io.Writer) error {
	var buf bytes.Buffer

	buf.WriteString(cs.ManifestID.String())
	buf.WriteByte('\n')
	buf.Write(cs.User)
	buf.WriteByte('\n')
	buf.WriteString(strconv.FormatUint(cs.Time.Time, 10))
	buf.WriteByte(' ')
	buf.WriteString(strconv.FormatInt(int64(cs.Time.TZ), 10))
	if len(cs.Extra) != 0 {
		buf.WriteByte(' ')
		buf.Write(cs.Extra.Encode())
	}
	buf.WriteByte('\n')
	for _, f := range cs.Files {
		buf.Write(f.Bytes())
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(cs.Comments)

	_, err := w.Write(buf.Bytes())
	return err
}

// Bytes serializes the changeset into a fresh buffer.
func (cs *Changeset) Bytes() []byte {
	var buf bytes.Buffer
	// bytes.Buffer never fails
	_ = cs.Generate(&buf)
	return buf.Bytes()
}

// Equal compares two changesets on structured form.
func (cs *Changeset) Equal(other *Changeset) bool {
	if other == nil {
		return false
	}
	if cs.Parents != other.Parents ||
		cs.ManifestID != other.ManifestID ||
		cs.Time != other.Time {
		return false
	}
	if !bytes.Equal(cs.User, other.User) || !bytes.Equal(cs.Comments, other.Comments) {
		return false
	}
	if !cs.Extra.Equal(other.Extra) {
		return false
	}
	if len(cs.Files) != len(other.Files) {
		return false
	}
	for i := range cs.Files {
		if !cs.Files[i].Equal(other.Files[i]) {
			return false
		}
	}
	return true
}
