package interpreter

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// builtinSerialize renders a value as a YAML document. Hashes are emitted
// through yaml.Node mappings so their key order survives the round trip.
func (i *Interpreter) builtinSerialize(args []Object) Object {
	if err := argCount("serialize", args, 1); err != nil {
		return err
	}
	node, errObj := objectToYamlNode(args[0])
	if errObj != nil {
		return errObj
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return newError(ConversionError, "cannot serialize value: %v", err)
	}
	return &String{Value: string(out)}
}

func (i *Interpreter) builtinDeserialize(args []Object) Object {
	if err := argCount("deserialize", args, 1); err != nil {
		return err
	}
	s, ok := args[0].(*String)
	if !ok {
		return newError(TypeError, "deserialize expects a string, got %s",
			strings.ToLower(string(args[0].Type())))
	}
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(s.Value), &node); err != nil {
		return newError(ConversionError, "cannot deserialize: %v", err)
	}
	if len(node.Content) == 0 {
		return NULL
	}
	return yamlNodeToObject(node.Content[0])
}

func objectToYamlNode(obj Object) (*yaml.Node, Object) {
	switch o := obj.(type) {
	case *Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case *Boolean:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(o.Value)}, nil
	case *Integer:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(o.Value, 10)}, nil
	case *Float:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float",
			Value: strconv.FormatFloat(o.Value, 'g', -1, 64)}, nil
	case *String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: o.Value}, nil
	case *List:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, el := range o.Elements {
			n, errObj := objectToYamlNode(el)
			if errObj != nil {
				return nil, errObj
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	case *Hash:
		mapping := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range o.Keys {
			v, errObj := objectToYamlNode(o.Pairs[k])
			if errObj != nil {
				return nil, errObj
			}
			mapping.Content = append(mapping.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, v)
		}
		return mapping, nil
	}
	return nil, newError(ConversionError, "cannot serialize %s",
		strings.ToLower(string(obj.Type())))
}

func yamlNodeToObject(node *yaml.Node) Object {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			return NULL
		case "!!bool":
			v, _ := strconv.ParseBool(node.Value)
			return nativeBoolToBooleanObject(v)
		case "!!int":
			v, err := strconv.ParseInt(node.Value, 10, 64)
			if err != nil {
				return &String{Value: node.Value}
			}
			return &Integer{Value: v}
		case "!!float":
			v, err := strconv.ParseFloat(node.Value, 64)
			if err != nil {
				return &String{Value: node.Value}
			}
			return &Float{Value: v}
		default:
			return &String{Value: node.Value}
		}
	case yaml.SequenceNode:
		elements := make([]Object, 0, len(node.Content))
		for _, child := range node.Content {
			elements = append(elements, yamlNodeToObject(child))
		}
		return &List{Elements: elements}
	case yaml.MappingNode:
		hash := NewHash()
		for idx := 0; idx+1 < len(node.Content); idx += 2 {
			hash.Set(node.Content[idx].Value, yamlNodeToObject(node.Content[idx+1]))
		}
		return hash
	case yaml.AliasNode:
		if node.Alias != nil {
			return yamlNodeToObject(node.Alias)
		}
	}
	return NULL
}
