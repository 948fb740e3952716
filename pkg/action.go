package pkg

type Action string

const (
	ActionRestart  Action = "Restart"
	ActionQuit     Action = "Quit"
	ActionGameOver Action = "Game Over"
	ActionNewBest  Action = "New Best!"
)
