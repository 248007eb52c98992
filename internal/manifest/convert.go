package manifest

import "github.com/balsymbols/symbolindex/internal/symbols"

func convertProperties(raw []rawProperty) symbols.PropertyList {
	if len(raw) == 0 {
		return nil
	}
	out := make(symbols.PropertyList, len(raw))
	for i, p := range raw {
		out[i] = symbols.Property{Name: p.Name, Value: p.Value}
	}
	return out
}

func convertFields(raw []rawField) []symbols.Field {
	if len(raw) == 0 {
		return nil
	}
	out := make([]symbols.Field, len(raw))
	for i, f := range raw {
		out[i] = symbols.Field{
			Id:   symbols.Id(f.Id),
			Name: f.Name,
			Type: symbols.TypeDefinition{
				Kind:         f.Type.Kind,
				Length:       f.Type.Length,
				Subtype:      f.Type.Subtype,
				EnumTypeName: f.Type.EnumTypeName,
			},
			Properties: convertProperties(f.Properties),
		}
	}
	return out
}

func convertKeys(raw []rawKey) []symbols.Key {
	if len(raw) == 0 {
		return nil
	}
	out := make([]symbols.Key, len(raw))
	for i, k := range raw {
		out[i] = symbols.Key{Fields: k.Fields}
	}
	return out
}

func convertControls(raw []rawControl) []symbols.Control {
	if len(raw) == 0 {
		return nil
	}
	out := make([]symbols.Control, len(raw))
	for i, c := range raw {
		out[i] = symbols.Control{
			Name:        c.Name,
			Kind:        c.Kind,
			SourceField: c.SourceField,
			Properties:  convertProperties(c.Properties),
			Children:    convertControls(c.Controls),
		}
	}
	return out
}

func convertParameters(raw []rawParameter) []symbols.Parameter {
	if len(raw) == 0 {
		return nil
	}
	out := make([]symbols.Parameter, len(raw))
	for i, p := range raw {
		out[i] = symbols.Parameter{Name: p.Name, Type: p.Type, Var: p.Var}
	}
	return out
}

func convertProcedures(raw []rawProcedure) []symbols.Procedure {
	if len(raw) == 0 {
		return nil
	}
	out := make([]symbols.Procedure, len(raw))
	for i, p := range raw {
		out[i] = symbols.Procedure{
			Name:       p.Name,
			Parameters: convertParameters(p.Parameters),
			ReturnType: p.ReturnType,
			Visibility: p.Visibility,
		}
	}
	return out
}

func convertVariables(raw []rawVariable) []symbols.Variable {
	if len(raw) == 0 {
		return nil
	}
	out := make([]symbols.Variable, len(raw))
	for i, v := range raw {
		out[i] = symbols.Variable{Name: v.Name, Type: v.Type}
	}
	return out
}

func convertTriggers(raw []rawTrigger) []symbols.Trigger {
	if len(raw) == 0 {
		return nil
	}
	out := make([]symbols.Trigger, len(raw))
	for i, tr := range raw {
		out[i] = symbols.Trigger{Name: tr.Name}
	}
	return out
}

func convertDataItems(raw []rawDataItem) []symbols.DataItem {
	if len(raw) == 0 {
		return nil
	}
	out := make([]symbols.DataItem, len(raw))
	for i, d := range raw {
		out[i] = symbols.DataItem{
			Name:        d.Name,
			SourceTable: d.SourceTable,
			Columns:     d.Columns,
			Children:    convertDataItems(d.Children),
		}
	}
	return out
}

func convertEnumValues(raw []rawEnumValue) []symbols.EnumValue {
	if len(raw) == 0 {
		return nil
	}
	out := make([]symbols.EnumValue, len(raw))
	for i, v := range raw {
		out[i] = symbols.EnumValue{Ordinal: v.Ordinal, Name: v.Name}
	}
	return out
}

// toObject converts a decoded raw vendor object into a Symbol Object,
// interning its strings and populating the synthetic Extends property
// for extension kinds.
func toObject(raw rawObject, info keyInfo, packageName string, in *symbols.Interner) *symbols.Object {
	props := convertProperties(raw.Properties)

	if info.ExtendsField != "" {
		var base string
		switch info.ExtendsField {
		case "TargetObject":
			base = raw.TargetObject
		case "Target":
			base = raw.Target
		}
		if base != "" {
			props = append(props, symbols.Property{Name: symbols.ExtendsProperty, Value: in.Intern(base)})
		}
	}

	obj := &symbols.Object{
		Type:        info.Type,
		Id:          symbols.Id(raw.Id),
		Name:        in.Intern(raw.Name),
		PackageName: in.Intern(packageName),
		Namespace:   in.Intern(raw.Namespace),
		Properties:  in.InternProperties(props),
	}

	switch info.Type {
	case symbols.Table, symbols.TableExtension:
		obj.Payload = symbols.TablePayload{
			Fields: convertFields(raw.Fields),
			Keys:   convertKeys(raw.Keys),
		}
	case symbols.Page, symbols.PageExtension:
		obj.Payload = symbols.PagePayload{Controls: convertControls(raw.Controls)}
	case symbols.Codeunit:
		obj.Payload = symbols.CodeunitPayload{
			Procedures: convertProcedures(raw.Procedures),
			Variables:  convertVariables(raw.Variables),
			Triggers:   convertTriggers(raw.Triggers),
		}
	case symbols.Report, symbols.ReportExtension:
		obj.Payload = symbols.ReportPayload{DataItems: convertDataItems(raw.DataItems)}
	case symbols.Query:
		obj.Payload = symbols.QueryPayload{DataItems: convertDataItems(raw.DataItems)}
	case symbols.XmlPort:
		obj.Payload = symbols.XmlPortPayload{DataItems: convertDataItems(raw.DataItems)}
	case symbols.Enum, symbols.EnumExtensionType:
		obj.Payload = symbols.EnumPayload{Values: convertEnumValues(raw.Values)}
	case symbols.Interface:
		obj.Payload = symbols.InterfacePayload{Procedures: convertProcedures(raw.Procedures)}
	case symbols.PermissionSet, symbols.PermissionSetExtension:
		obj.Payload = symbols.PermissionSetPayload{Permissions: convertProperties(raw.Permissions)}
	}

	return obj
}
