package command

// Interpreter runs raw command lines: parse, then execute.
type Interpreter struct {
	parser   *Parser
	executor *Executor
}

// NewInterpreter pairs a parser with the executor that owns the tasks.
func NewInterpreter(parser *Parser, executor *Executor) *Interpreter {
	return &Interpreter{parser: parser, executor: executor}
}

// Executor returns the underlying executor.
func (in *Interpreter) Executor() *Executor {
	return in.executor
}

// Handle parses and executes one line. Parse failures become error
// outcomes, exactly like execution failures.
func (in *Interpreter) Handle(line string) Outcome {
	cmd, err := in.parser.Parse(line)
	if err != nil {
		return in.executor.Reject(line, err)
	}
	return in.executor.execute(cmd, line)
}
