package gfx

// Color is a linear RGBA color
type Color [4]float32

// ClearColor is the color every frame starts from
var ClearColor = Color{0.1, 0.1, 0.1, 1.0}

// Command is a recorded operation, it is either a ClearCommand or a DrawCommand
type Command interface {
	command()
}

// ClearCommand fills a render target with a single color
type ClearCommand struct {
	Target RenderTargetView
	Color  Color
}

// DrawCommand draws a slice with a pipeline and its bound data
type DrawCommand struct {
	Slice    Slice
	Pipeline PipelineState
	Data     PipeData
}

func (ClearCommand) command() {}
func (DrawCommand) command()  {}

// Encoder records commands for a single frame. It is created by the factory,
// filled, handed to the device with Flush and then discarded.
type Encoder struct {
	commands []Command
}

// NewEncoder returns an empty encoder
func NewEncoder() *Encoder {
	return &Encoder{commands: make([]Command, 0, 2)}
}

// Clear records a clear of target to color
func (e *Encoder) Clear(target RenderTargetView, color Color) {
	e.commands = append(e.commands, ClearCommand{Target: target, Color: color})
}

// Draw records a draw of slice with pso using data
func (e *Encoder) Draw(slice Slice, pso PipelineState, data PipeData) {
	e.commands = append(e.commands, DrawCommand{Slice: slice, Pipeline: pso, Data: data})
}

// Commands returns the recorded commands
func (e *Encoder) Commands() []Command {
	return e.commands
}

// Reset drops every recorded command
func (e *Encoder) Reset() {
	e.commands = e.commands[:0]
}

// Flush submits the recorded commands to the device and resets the encoder
func (e *Encoder) Flush(d Device) error {
	err := d.Submit(e.commands)
	e.Reset()
	return err
}
