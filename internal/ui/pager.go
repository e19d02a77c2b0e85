package ui

import (
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// pagerCommand shows content in ov while bubbletea has released the terminal
type pagerCommand struct {
	content string
}

func (c *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(c.content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// ov opens the terminal itself
func (c *pagerCommand) SetStdin(io.Reader)  {}
func (c *pagerCommand) SetStdout(io.Writer) {}
func (c *pagerCommand) SetStderr(io.Writer) {}

// showInPager returns a command that pages content and reports back with pagerExitMsg
func showInPager(content string) tea.Cmd {
	return tea.Exec(&pagerCommand{content: content}, func(err error) tea.Msg {
		return pagerExitMsg{err: err}
	})
}
