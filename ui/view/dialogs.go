package view

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Dialogs shows Tk message boxes. Calls block until dismissed.
type Dialogs struct{}

func NewDialogs() *Dialogs { return &Dialogs{} }

func (d *Dialogs) Warn(title, msg string) {
	MessageBox(Title(title), Msg(msg), Icon("warning"), Type("ok"))
}

func (d *Dialogs) Info(title, msg string) {
	MessageBox(Title(title), Msg(msg), Icon("info"), Type("ok"))
}

// Confirm reports whether the user answered yes.
func (d *Dialogs) Confirm(title, msg string) bool {
	return MessageBox(Title(title), Msg(msg), Icon("question"), Type("yesno")) == "yes"
}
