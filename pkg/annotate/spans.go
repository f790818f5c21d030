package annotate

import (
	"github.com/leapstack-labs/vyast/pkg/ast"
	"github.com/leapstack-labs/vyast/pkg/token"
)

// attachSpans sets every node's position and span from idx. Nodes idx has
// no range for lose their position and get a nil span.
func (a *annotator) attachSpans(root ast.Node, idx TokenIndex) {
	ast.Inspect(root, func(n ast.Node) {
		info := n.Info()
		r, ok := idx.Lookup(n)
		if !ok {
			info.Loc = token.Span{}
			info.Span = nil
			a.missed++
			return
		}

		byteStart := r.Start.Offset
		byteLen := r.End.Offset - byteStart
		info.Loc = token.Span{Start: r.Start, End: r.End}
		info.Span = &ast.Span{
			StartLine: r.Start.Line,
			StartCol:  r.Start.Column,
			EndLine:   r.End.Line,
			EndCol:    r.End.Column,
			ByteStart: byteStart,
			ByteLen:   byteLen,
			SourceID:  a.sourceID,
			Src:       ast.FormatSrc(byteStart, byteLen, a.sourceID),
		}
		a.spanned++
	})
}
