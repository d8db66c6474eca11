package manifest

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is one editable property of an entry, named as in the JSON document.
type Field struct {
	Name  string
	Value string
}

// Entry is anything the shell can view and prompt-edit field by field.
type Entry interface {
	Fields() []Field
	Set(field, value string) error
}

// ParseExclude reads a boolean flag typed at a prompt.
func ParseExclude(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on":
		return true, nil
	case "false", "0", "no", "n", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value: %q", s)
}

func (c *Config) Fields() []Field {
	return []Field{
		{"name", c.Name},
		{"appId", c.AppID},
		{"appIdDedicatedServer", c.AppIDDedicatedServer},
		{"baseDir", c.BaseDir},
		{"workshopDir", c.WorkshopDir},
	}
}

func (c *Config) Set(field, value string) error {
	switch field {
	case "name":
		c.Name = value
		c.ID = HashID(value)
	case "appId":
		c.AppID = value
	case "appIdDedicatedServer":
		c.AppIDDedicatedServer = value
	case "baseDir":
		c.BaseDir = value
	case "workshopDir":
		c.WorkshopDir = value
	default:
		return fmt.Errorf("%w: config.%s", ErrUnknownField, field)
	}
	return nil
}

func (p *Plugin) Fields() []Field {
	return []Field{
		{"name", p.Name},
		{"exclude", strconv.FormatBool(p.Exclude)},
		{"rel", p.Rel},
	}
}

func (p *Plugin) Set(field, value string) error {
	switch field {
	case "name":
		p.Name = value
		p.ID = HashID(value)
	case "exclude":
		b, err := ParseExclude(value)
		if err != nil {
			return err
		}
		p.Exclude = b
	case "rel":
		p.Rel = value
	default:
		return fmt.Errorf("%w: plugin.%s", ErrUnknownField, field)
	}
	return nil
}

func (r *Resource) Fields() []Field {
	return []Field{
		{"name", r.Name},
		{"exclude", strconv.FormatBool(r.Exclude)},
		{"platform", r.Platform},
		{"url", r.URL},
		{"rel", r.Rel},
		{"targetPath", r.TargetPath},
	}
}

func (r *Resource) Set(field, value string) error {
	switch field {
	case "name":
		r.Name = value
	case "exclude":
		b, err := ParseExclude(value)
		if err != nil {
			return err
		}
		r.Exclude = b
	case "platform":
		r.Platform = value
	case "url":
		r.URL = value
		r.ID = HashID(value)
	case "rel":
		r.Rel = value
	case "targetPath":
		r.TargetPath = value
	default:
		return fmt.Errorf("%w: resource.%s", ErrUnknownField, field)
	}
	return nil
}

func (a *Addon) Fields() []Field {
	return []Field{
		{"name", a.Name},
		{"exclude", strconv.FormatBool(a.Exclude)},
		{"url", a.URL},
	}
}

func (a *Addon) Set(field, value string) error {
	switch field {
	case "name":
		a.Name = value
		a.ID = HashID(value)
	case "exclude":
		b, err := ParseExclude(value)
		if err != nil {
			return err
		}
		a.Exclude = b
	case "url":
		a.URL = value
	default:
		return fmt.Errorf("%w: addon.%s", ErrUnknownField, field)
	}
	return nil
}

var (
	_ Entry = (*Config)(nil)
	_ Entry = (*Plugin)(nil)
	_ Entry = (*Resource)(nil)
	_ Entry = (*Addon)(nil)
)
