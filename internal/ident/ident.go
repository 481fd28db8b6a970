// Package ident parses the slash-delimited identifiers consumed by the
// front-end: user[/repo[/solution[/file-path...]]].
package ident

import "strings"

// Ident 是标识符解析结果；缺省段为空字符串，FilePath 保留剩余的全部斜杠。
type Ident struct {
	User     string
	Repo     string
	Solution string
	FilePath string
}

// Parse 按层级拆分标识符。多余的前后斜杠会被忽略，空串解析为全空 Ident。
func Parse(raw string) Ident {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return Ident{}
	}

	parts := strings.SplitN(trimmed, "/", 4)
	id := Ident{User: parts[0]}
	if len(parts) > 1 {
		id.Repo = parts[1]
	}
	if len(parts) > 2 {
		id.Solution = parts[2]
	}
	if len(parts) > 3 {
		id.FilePath = parts[3]
	}
	return id
}

// String 重新拼接标识符，供日志字段与链接生成复用。
func (i Ident) String() string {
	segments := make([]string, 0, 4)
	for _, segment := range []string{i.User, i.Repo, i.Solution, i.FilePath} {
		if segment == "" {
			break
		}
		segments = append(segments, segment)
	}
	return strings.Join(segments, "/")
}
