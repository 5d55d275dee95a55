package format

import (
	"encoding/json"
	"fmt"

	"github.com/andybarron/preferences-go/pkg/errors"
	"github.com/beevik/etree"
)

// xmlCodec stores preferences as a flat key/value XML document:
//
//	<preferences>
//	  <entry key="color" value="blue"/>
//	  <node name="editor">
//	    <entry key="font" value="monospace"/>
//	  </node>
//	</preferences>
//
// All leaf values are stored as strings, which makes this codec a fit for
// Map-shaped data. Typed structs should use the json, toml or yaml codecs.
type xmlCodec struct{}

func (xmlCodec) Name() string      { return "xml" }
func (xmlCodec) Extension() string { return extensionFor("xml") }

func (xmlCodec) Marshal(v interface{}) ([]byte, error) {
	// Normalize through JSON so any map- or struct-shaped value becomes
	// map[string]interface{}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSerialize, "failed to normalize value for XML")
	}
	var tree map[string]interface{}
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, errors.Wrap(err, errors.ErrSerialize, "XML preferences must be map-shaped")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("preferences")
	if err := writeNode(root, tree); err != nil {
		return nil, err
	}

	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSerialize, "failed to write XML document")
	}
	return data, nil
}

// writeNode emits map entries as <entry> leaves and nested maps as <node>
// subtrees
func writeNode(parent *etree.Element, tree map[string]interface{}) error {
	for key, value := range tree {
		switch v := value.(type) {
		case map[string]interface{}:
			node := parent.CreateElement("node")
			node.CreateAttr("name", key)
			if err := writeNode(node, v); err != nil {
				return err
			}
		case []interface{}:
			return errors.Newf(errors.ErrSerialize, "XML preferences do not support list values (key %q)", key)
		case nil:
			entry := parent.CreateElement("entry")
			entry.CreateAttr("key", key)
			entry.CreateAttr("value", "")
		default:
			entry := parent.CreateElement("entry")
			entry.CreateAttr("key", key)
			entry.CreateAttr("value", fmt.Sprint(v))
		}
	}
	return nil
}

func (xmlCodec) Unmarshal(data []byte, out interface{}) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return errors.Wrap(err, errors.ErrDeserialize, "failed to parse XML preferences")
	}

	root := doc.SelectElement("preferences")
	if root == nil {
		return errors.New(errors.ErrDeserialize, "XML preferences missing <preferences> root")
	}

	tree := readNode(root)

	// Normalize back through JSON into the caller's type
	raw, err := json.Marshal(tree)
	if err != nil {
		return errors.Wrap(err, errors.ErrDeserialize, "failed to normalize XML preferences")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, errors.ErrDeserialize, "failed to decode XML preferences")
	}
	return nil
}

func readNode(el *etree.Element) map[string]interface{} {
	tree := make(map[string]interface{})
	for _, entry := range el.SelectElements("entry") {
		tree[entry.SelectAttrValue("key", "")] = entry.SelectAttrValue("value", "")
	}
	for _, node := range el.SelectElements("node") {
		tree[node.SelectAttrValue("name", "")] = readNode(node)
	}
	return tree
}
