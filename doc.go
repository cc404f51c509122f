/*
Package texpect matches the output of runnable examples against
expected-output templates. A template is the expected text itself,
interleaved with capture tags. The simplest template is the verbatim
expected text and matches exactly that text. To tolerate varying parts
one adds tags, written between '<' and '>' by default:

	hello <who>!

matches "hello world!" and binds the tag 'who' to "world". A tag name
consists of letters, digits and underscores. The same name may appear
several times in one template; the match only succeeds when every
occurrence captures exactly the same text:

	<a> plus <a>

matches "x plus x" but not "x plus y". The special spelling <...> is the
wildcard: it matches any span of text, across line boundaries, without
binding a name. The empty tag <> captures like a named tag but the value
is not retrievable. To match a literal delimiter character, double it:
"<<" matches one '<'.

Tags are non-greedy. A tag consumes the least text that lets the rest of
the template match, and it never eats into the literal text that follows
it. Matching a compiled template against a subject text is bounded: one
attempt costs at most a fixed budget of steps proportional to the
subject length, so adversarial templates fail fast with a distinct error
instead of hanging.

# Guessing Captures on Failure

When a match fails there are no captures, but a report that only says
"no match" is of little use. Pattern.Guess aligns the template's literal
spans with the subject text and reconstructs, for each tag whose
surrounding literals were found exactly once, the text the tag would
have captured. Each guess carries a confidence grade; a guess is never
derived from an anchor that is ambiguous in the searched region. In
those regions the tag markup is kept as is.

# Whitespace Normalization

With CompileOptions.NormWS, runs of spaces and tabs inside template
literals match one or more whitespace characters in the subject, and
whitespace at line edges becomes optional. Only literal spans are
normalized this way; the text a tag captures is always surfaced
verbatim.

The sibling packages build the surrounding literate-testing workflow:
find extracts examples from documents, run executes them through an
interpreter, diff renders comparison reports, and texpecting hooks
template checks into Go tests.
*/
package texpect
