package obj

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// objFile is the parse tree of a Wavefront OBJ document.
// Only geometry and grouping statements are interpreted, anything else is kept
// as an opaque statement and ignored.
type objFile struct {
	Lines []*objLine `parser:"( @@? EOL )*"`
}

type objLine struct {
	Pos      lexer.Position
	Vertex   *objVertex `parser:"  \"v\" @@"`
	Face     *objFace   `parser:"| \"f\" @@"`
	Group    *objName   `parser:"| ( \"g\" | \"o\" ) @@"`
	Material *objName   `parser:"| \"usemtl\" @@"`
	Library  *objName   `parser:"| \"mtllib\" @@"`
	Other    *objOther  `parser:"| @@"`
}

type objVertex struct {
	Coords []float64 `parser:"@Number+"`
}

type objFace struct {
	Corners []*objCorner `parser:"@@+"`
}

type objCorner struct {
	Vertex  int  `parser:"@Number"`
	Texture *int `parser:"( \"/\" @Number?"`
	Normal  *int `parser:"  ( \"/\" @Number )? )?"`
}

type objName struct {
	Parts []string `parser:"( @Ident | @Number | @Punct )*"`
}

type objOther struct {
	Keyword string   `parser:"@Ident"`
	Args    []string `parser:"( @Ident | @Number | @Punct | @\"/\" )*"`
}

var objLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "comment", Pattern: `#[^\n]*`},
	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "whitespace", Pattern: `[ \t]+`},
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.\-]*`},
	{Name: "Slash", Pattern: `/`},
	{Name: "Punct", Pattern: `[^\s#/]`},
})

var objParser = participle.MustBuild[objFile](
	participle.Lexer(objLexer),
)
