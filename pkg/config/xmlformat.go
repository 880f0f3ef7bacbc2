package config

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/srcexport/pkg/errors"
	"github.com/arthur-debert/srcexport/pkg/filter"
	"github.com/arthur-debert/srcexport/pkg/internal/xmldoc"
	"github.com/beevik/etree"
)

const xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

// xmlToggles maps the attributes of the XML settings root to document keys
var xmlToggles = []struct {
	attr string
	key  string
}{
	{"ComputeHash", "compute_hash"},
	{"ConvertRelativeHintPathsToAbsolute", "convert_hint_paths"},
	{"ExcludeGeneratedFiles", "exclude_generated"},
	{"KeepSymbolicLinks", "keep_symbolic_links"},
	{"OverrideExistingFile", "override_existing"},
	{"RemoveTfsBinding", "remove_binding"},
	{"ReplaceLinkFiles", "replace_link_files"},
	{"UnprotectFile", "unprotect"},
}

// xmlSettingsMap reads a <Settings> document into the key layout shared
// with the TOML and YAML documents. Absent toggles and applicability
// flags read as false, as the XML serializer wrote every set value.
func xmlSettingsMap(data []byte) (map[string]interface{}, error) {
	doc, err := xmldoc.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid XML settings document")
	}
	root := doc.Root()
	if root.Tag != "Settings" {
		return nil, errors.New(errors.ErrConfigParse, "XML settings document must have a <Settings> root")
	}

	m := make(map[string]interface{})
	for _, t := range xmlToggles {
		v, err := xmlBool(root.SelectAttrValue(t.attr, ""), false)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "attribute %s", t.attr)
		}
		m[t.key] = v
	}

	if el := root.SelectElement("OutputReadOnly"); el != nil && !isNil(el) {
		v, err := xmlBool(strings.TrimSpace(el.Text()), false)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "element OutputReadOnly")
		}
		m["output_read_only"] = v
	}

	var projects []interface{}
	if list := root.SelectElement("ExcludedProjects"); list != nil {
		for _, p := range list.SelectElements("Project") {
			projects = append(projects, map[string]interface{}{
				"id":   p.SelectAttrValue("Id", ""),
				"name": p.SelectAttrValue("Name", ""),
			})
		}
	}
	m["excluded_projects"] = projects

	var rules []interface{}
	if list := root.SelectElement("Filters"); list != nil {
		for _, f := range list.SelectElements("Filter") {
			rule, err := xmlRuleMap(f)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		}
	}
	m["rules"] = rules

	var replacements []interface{}
	for _, r := range root.SelectElements("Replace") {
		replacements = append(replacements, map[string]interface{}{
			"search":  r.SelectAttrValue("text", ""),
			"replace": r.SelectAttrValue("by", ""),
		})
	}
	m["replacements"] = replacements

	return m, nil
}

func xmlRuleMap(f *etree.Element) (map[string]interface{}, error) {
	rule := map[string]interface{}{
		"pattern":    f.Text(),
		"expression": f.SelectAttrValue("ExpressionType", "Globbing"),
		"kind":       f.SelectAttrValue("FilterType", "Exclude"),
	}

	flags := []struct {
		attr string
		key  string
		def  bool
	}{
		{"ApplyToFileName", "apply_to_name", false},
		{"ApplyToPath", "apply_to_path", false},
		{"ApplyToFile", "apply_to_file", false},
		{"ApplyToDirectory", "apply_to_directory", false},
		{"CaseSensitive", "case_sensitive", false},
		{"Enabled", "enabled", true},
	}
	for _, fl := range flags {
		v, err := xmlBool(f.SelectAttrValue(fl.attr, ""), fl.def)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "filter %q attribute %s", f.Text(), fl.attr)
		}
		rule[fl.key] = v
	}
	return rule, nil
}

func isNil(el *etree.Element) bool {
	for _, a := range el.Attr {
		if a.Key == "nil" && (a.Space == "xsi" || a.NamespaceURI() == xsiNamespace) {
			return strings.EqualFold(a.Value, "true")
		}
	}
	return false
}

func xmlBool(value string, def bool) (bool, error) {
	if value == "" {
		return def, nil
	}
	return strconv.ParseBool(strings.ToLower(value))
}

// marshalXML writes settings in the <Settings> document layout
func marshalXML(s *Settings) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := doc.CreateElement("Settings")
	root.CreateAttr("xmlns:xsi", xsiNamespace)

	values := map[string]bool{
		"ComputeHash":                        s.ComputeHash,
		"ConvertRelativeHintPathsToAbsolute": s.ConvertRelativeHintPaths,
		"ExcludeGeneratedFiles":              s.ExcludeGenerated,
		"KeepSymbolicLinks":                  s.KeepSymbolicLinks,
		"OverrideExistingFile":               s.OverrideExisting,
		"RemoveTfsBinding":                   s.RemoveBinding,
		"ReplaceLinkFiles":                   s.ReplaceLinkFiles,
		"UnprotectFile":                      s.UnprotectFile,
	}
	for _, t := range xmlToggles {
		root.CreateAttr(t.attr, strconv.FormatBool(values[t.attr]))
	}

	projects := root.CreateElement("ExcludedProjects")
	for _, p := range s.ExcludedProjects {
		el := projects.CreateElement("Project")
		el.CreateAttr("Id", p.ID)
		if p.Name != "" {
			el.CreateAttr("Name", p.Name)
		}
	}

	filters := root.CreateElement("Filters")
	for _, r := range s.Rules {
		el := filters.CreateElement("Filter")
		el.CreateAttr("ApplyToDirectory", strconv.FormatBool(r.ApplyToDirectory))
		el.CreateAttr("ApplyToFile", strconv.FormatBool(r.ApplyToFile))
		el.CreateAttr("ApplyToFileName", strconv.FormatBool(r.ApplyToFileName))
		el.CreateAttr("ApplyToPath", strconv.FormatBool(r.ApplyToPath))
		el.CreateAttr("CaseSensitive", strconv.FormatBool(r.CaseSensitive))
		el.CreateAttr("Enabled", strconv.FormatBool(r.EnabledFlag))
		expression := "Globbing"
		if r.ExpressionOrDefault() == filter.Regex {
			expression = "Regex"
		}
		el.CreateAttr("ExpressionType", expression)
		kind := "Exclude"
		if r.KindOrDefault() == filter.Include {
			kind = "Include"
		}
		el.CreateAttr("FilterType", kind)
		el.SetText(r.Pattern)
	}

	ro := root.CreateElement("OutputReadOnly")
	if s.OutputReadOnly != nil {
		ro.SetText(strconv.FormatBool(*s.OutputReadOnly))
	} else {
		ro.CreateAttr("xsi:nil", "true")
	}

	for _, rep := range s.Replacements {
		el := root.CreateElement("Replace")
		el.CreateAttr("text", rep.SearchText)
		el.CreateAttr("by", rep.ReplacementText)
	}

	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigSave, "failed to render XML settings")
	}
	return data, nil
}
