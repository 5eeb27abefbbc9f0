package dto

type NudgeInput struct {
	Selector string
	Text     string // empty uses the default nudge text
}

type NudgeOutput struct {
	MenteeName string
	Endpoint   string
	Via        string // notifier name, or "webhook"
}

// DoctorOutput is the health report for the notification path.
type DoctorOutput struct {
	ManifestFound bool
	ManifestError string
	PluginName    string
	PluginVersion string
	PluginError   string
	Fallback      string
}
