package parser

import (
	"regexp"
	"strings"
)

// CommentSkipper reports the length of a comment occurring at the very
// start of text, or 0 if none starts there.
type CommentSkipper func(text string) int

// DefaultCommentPattern matches one non-nested "(* ... *)" or "{ ... }"
// comment, mirroring the compiler's flat default.
var DefaultCommentPattern = regexp.MustCompile(`(?s)\(\*.*?\*\)|\{.*?\}`)

// RegexComment adapts a plain regexp into a CommentSkipper. Suitable for
// any non-recursive comment pattern, including DefaultCommentPattern.
func RegexComment(re *regexp.Regexp) CommentSkipper {
	return func(text string) int {
		loc := re.FindStringIndex(text)
		if loc == nil || loc[0] != 0 {
			return 0
		}
		return loc[1]
	}
}

// NestedComment recognizes a non-nested brace comment "{...}" or a
// "(* ... *)" comment that may itself contain balanced "(* ... *)"
// comments to arbitrary depth. Selected when the EPAS pragma
// "(* @NESTEDCOMMENTS := 'Yes' *)" is detected at the top of a source
// file; a plain regexp cannot express unbounded nesting, so this is a
// hand-written scanner instead of a CommentSkipper built from RegexComment.
func NestedComment() CommentSkipper {
	return func(text string) int {
		switch {
		case strings.HasPrefix(text, "{"):
			if end := strings.Index(text, "}"); end >= 0 {
				return end + 1
			}
			return 0
		case strings.HasPrefix(text, "(*"):
			depth := 0
			i := 0
			for i < len(text) {
				switch {
				case strings.HasPrefix(text[i:], "(*"):
					depth++
					i += 2
				case strings.HasPrefix(text[i:], "*)"):
					i += 2
					depth--
					if depth == 0 {
						return i
					}
				default:
					i++
				}
			}
			return 0
		default:
			return 0
		}
	}
}
