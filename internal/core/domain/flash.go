package domain

// Flash levels double as the flash keys inside the browser session.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// FlashLevels is the order in which pending flashes are looked up.
var FlashLevels = []string{FlashSuccess, FlashError}

// Flash is a message shown once on the next rendered view.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}
