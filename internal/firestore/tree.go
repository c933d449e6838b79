package firestore

import (
	"fmt"
	"sort"
	"strings"

	fs "cloud.google.com/go/firestore"
)

func treeElement(name string, indent int, last bool) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", indent))
	if last {
		sb.WriteRune('└')
	} else {
		sb.WriteRune('├')
	}
	sb.WriteString(fmt.Sprintf(" %s", name))
	return sb.String()
}

func pathOrNil(r *fs.DocumentRef) string {
	var sb strings.Builder
	sb.WriteString("→(")
	if r != nil {
		sb.WriteString(r.Path)
	}
	sb.WriteRune(')')
	return sb.String()
}

func treeRef(name string, indent int, last bool, r *fs.DocumentRef) string {
	return treeElement(name, indent, last) + ": " + pathOrNil(r)
}

func treeString(name string, indent int, last bool, value string) string {
	return treeElement(name, indent, last) + ": " + value
}

func treeInt(name string, indent int, last bool, value int) string {
	return treeElement(name, indent, last) + fmt.Sprintf(": %d", value)
}

func treeFloat64(name string, indent int, last bool, value float64) string {
	return treeElement(name, indent, last) + fmt.Sprintf(": %f", value)
}

func treeStringSlice(name string, indent int, last bool, value []string) string {
	var sb strings.Builder
	sb.WriteString(treeElement(name, indent, last))
	sb.WriteString(fmt.Sprintf(": slice[%d] ↓↓↓", len(value)))
	for i, s := range value {
		sb.WriteString(fmt.Sprintf("\n│%*d: %s", indent+3, i, s))
	}
	return sb.String()
}

func treeFloat64Slice(name string, indent int, last bool, value []float64) string {
	var sb strings.Builder
	sb.WriteString(treeElement(name, indent, last))
	sb.WriteString(fmt.Sprintf(": slice[%d] ↓↓↓", len(value)))
	for i, v := range value {
		sb.WriteString(fmt.Sprintf("\n│%*d: %f", indent+3, i, v))
	}
	return sb.String()
}

// treeFloat64Map prints map entries in key order.
func treeFloat64Map(name string, indent int, last bool, value map[string]float64) string {
	var sb strings.Builder
	sb.WriteString(treeElement(name, indent, last))
	sb.WriteString(fmt.Sprintf(": map[%d] ↓↓↓", len(value)))
	keys := make([]string, 0, len(value))
	for k := range value {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("\n│%*s: %f", indent+3, k, value[k]))
	}
	return sb.String()
}
