package probe

import (
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	probeLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d*|\.\d+|\d+)`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
	})

	scriptParser = participle.MustBuild[Script](
		participle.Lexer(probeLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.Unquote("String"),
	)
)

// Script is a list of gesture commands, one per line
type Script struct {
	Commands []*Command `parser:"( @@ | Newline )*"`
}

// Command is a single script line
type Command struct {
	Pos lexer.Position

	View  *ViewCommand  `parser:"  'view' @@"`
	Tool  *ToolCommand  `parser:"| 'tool' @@"`
	Click *ClickCommand `parser:"| 'click' @@"`
	Drag  *DragCommand  `parser:"| 'drag' @@"`
	Layer *LayerCommand `parser:"| 'layer' @@"`
}

// Point is a coordinate pair
type Point struct {
	X float64 `parser:"@Number"`
	Y float64 `parser:"@Number"`
}

// ViewCommand fits the drawing or sets the view explicitly:
// view fit | view center <x> <y> scale <s> [size <w> <h>]
type ViewCommand struct {
	Fit    bool    `parser:"( @'fit'"`
	Center *Point  `parser:"| 'center' @@"`
	Scale  float64 `parser:"  'scale' @Number )"`
	Size   *Point  `parser:"( 'size' @@ )?"`
}

// ToolCommand activates a tool by name
type ToolCommand struct {
	Name string `parser:"@Ident"`
}

// ClickCommand presses and releases at a model position
type ClickCommand struct {
	At Point `parser:"@@"`
}

// DragCommand drags between two model positions
type DragCommand struct {
	From Point `parser:"@@"`
	To   Point `parser:"'to' @@"`
}

// LayerCommand shows or hides a layer
type LayerCommand struct {
	Name  string `parser:"@String"`
	State string `parser:"@( 'on' | 'off' )"`
}

// Parse reads a script
func Parse(name string, r io.Reader) (*Script, error) {
	return scriptParser.Parse(name, r)
}

// ParseString parses a script from a string
func ParseString(input string) (*Script, error) {
	return scriptParser.ParseString("", input)
}
