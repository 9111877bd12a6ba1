package superstrict

// Output is the rewritten form of a source file. It is immutable after
// creation.
type Output struct {
	code     string
	source   string
	filename string
	result   *Result
}

// Code returns the rewritten source code. When the program was not selected
// for rewriting this is the original program, reprinted.
func (o *Output) Code() string {
	return o.code
}

// Source returns the original source code.
func (o *Output) Source() string {
	return o.source
}

// Filename returns the filename associated with the source, if any.
func (o *Output) Filename() string {
	return o.filename
}

// Result returns the details of the rewrite.
func (o *Output) Result() *Result {
	return o.result
}

// Transformed reports whether the program was rewritten.
func (o *Output) Transformed() bool {
	return o.result.Transformed
}
