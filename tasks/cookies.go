package tasks

import "strings"

type Cookie struct {
	Name  string
	Value string
}

type Cookies []Cookie

// Wire form: name=value pairs joined by ";"
func (c Cookies) String() string {
	parts := make([]string, 0, len(c))
	for _, cookie := range c {
		parts = append(parts, cookie.Name+"="+cookie.Value)
	}
	return strings.Join(parts, ";")
}
