package entity

// ActionName identifies one action of the fixed browser action set.
type ActionName string

const (
	ActionNavigate   ActionName = "navigate"
	ActionClick      ActionName = "click"
	ActionInputText  ActionName = "input_text"
	ActionExtract    ActionName = "extract"
	ActionSendKeys   ActionName = "send_keys"
	ActionScroll     ActionName = "scroll"
	ActionScreenshot ActionName = "screenshot"
	ActionAskUser    ActionName = "ask_user"
	ActionDone       ActionName = "done"
)

// BrowserActions is the set executed against the environment. ActionAskUser
// and ActionDone are handled by the loop itself and never reach the browser.
var BrowserActions = map[ActionName]bool{
	ActionNavigate:   true,
	ActionClick:      true,
	ActionInputText:  true,
	ActionExtract:    true,
	ActionSendKeys:   true,
	ActionScroll:     true,
	ActionScreenshot: true,
}

// ActionSelection is the oracle's answer to one planning call.
type ActionSelection struct {
	Name ActionName
	Args map[string]any
}

// ActionResult is what the environment reports back after executing one
// action. A failed action (элемент исчез, индекс вне диапазона и т.п.) sets
// Error instead of returning a Go error, so the loop can record it and let
// the oracle recover on the next step.
type ActionResult struct {
	Payload     string
	Error       string
	DidNavigate bool
}

// Failed reports whether the action itself failed.
func (r *ActionResult) Failed() bool {
	return r.Error != ""
}
