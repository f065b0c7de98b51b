package domain

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	reasonRequired = "this field is required"
	reasonBlank    = "this field may not be blank"
)

func requireText(p Problems, field, value string, max int) {
	if value == "" {
		p.Add(field, reasonRequired)
		return
	}
	if strings.TrimSpace(value) == "" {
		p.Add(field, reasonBlank)
		return
	}
	if max > 0 {
		maxLength(p, field, value, max)
	}
}

func maxLength(p Problems, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		p.Add(field, "ensure this field has no more than "+strconv.Itoa(max)+" characters")
	}
}

func requireDate(p Problems, field string, value time.Time) {
	if value.IsZero() {
		p.Add(field, reasonRequired)
	}
}

func requireRef(p Problems, field, id string) {
	if id == "" {
		p.Add(field, reasonRequired)
	}
}
