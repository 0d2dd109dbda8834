package domain

// CommandKind is one of the six normalized user intents the engine
// accepts. Everything the input layer produces collapses into these.
type CommandKind string

const (
	CommandAdvance CommandKind = "advance"
	CommandRetreat CommandKind = "retreat"
	CommandPause   CommandKind = "pause"
	CommandResume  CommandKind = "resume"
	CommandClose   CommandKind = "close"
	CommandJump    CommandKind = "jump"
)

// Command carries an intent into the navigation controller. Target is
// only meaningful for CommandJump.
type Command struct {
	Kind   CommandKind
	Target Position
}

func Advance() Command { return Command{Kind: CommandAdvance} }
func Retreat() Command { return Command{Kind: CommandRetreat} }
func Pause() Command   { return Command{Kind: CommandPause} }
func Resume() Command  { return Command{Kind: CommandResume} }
func Close() Command   { return Command{Kind: CommandClose} }

func Jump(target Position) Command {
	return Command{Kind: CommandJump, Target: target}
}
