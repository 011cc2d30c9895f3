package store

import (
	"fmt"
	"strings"
)

// sanitizeName 清理文件名中不适合作为对象键的字符.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		"#", "_",
		"?", "_",
		"%", "_",
		" ", "_",
	)

	return replacer.Replace(name)
}

// BuildStorageKey 构造对象存储键：<user>/<id>-<sanitizedName>.
// 文件上传后该键不再变化，重命名只改数据库行.
func BuildStorageKey(user, id, name string) string {
	return fmt.Sprintf("%s/%s-%s", user, id, sanitizeName(name))
}
