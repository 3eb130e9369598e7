package utils

import (
	"sort"

	"github.com/zooyer/dxfview/entities"
)

func GetAttrs(ins *entities.Insert) map[string]string {
	var attrs = make(map[string]string)
	for _, a := range ins.Attributes {
		attrs[a.Tag] = a.Text
	}

	return attrs
}

func GetAttr(ins *entities.Insert, key string) string {
	return GetAttrs(ins)[key]
}

// AttrTags 按字典序返回属性标签
func AttrTags(ins *entities.Insert) []string {
	var tags = make([]string, 0, len(ins.Attributes))
	for tag := range GetAttrs(ins) {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return tags
}
