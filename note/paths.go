package note

import (
	"os"

	"github.com/ardnew/mung"
)

// pathList is the expression namespace for PATH-like lists, so a note can
// show a search path with extra entries in front:
//
//	[#calc paths.prefix(env("PATH"), "/opt/tools/bin")]
var pathList = map[string]any{
	"prefix":   prefixPaths,
	"prefixif": prefixPathsIf,
	"sep":      string(os.PathListSeparator),
}

func prefixPaths(list string, items ...string) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(items...),
	).String()
}

// prefixPathsIf keeps only the entries accepted by keep.
func prefixPathsIf(list string, keep func(string) bool, items ...string) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(items...),
		mung.WithFilter(keep),
	).String()
}
