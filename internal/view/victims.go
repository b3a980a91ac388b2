// Package view renders the HTML pages and datastar fragments as templ components.
package view

import "strconv"

// Element IDs shared with the handlers that patch them.
const (
	VictimsBodyID = "victims-body"
	FormErrorsID  = "victim-form-errors"
)

// VictimRowID returns the DOM id of a victim's table row.
func VictimRowID(id int64) string {
	return "victim-" + strconv.FormatInt(id, 10)
}
