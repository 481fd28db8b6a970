package browsehub

import (
	"github.com/browse-hub/browse-hub/internal/ident"
	"github.com/browse-hub/browse-hub/internal/page"
	"github.com/browse-hub/browse-hub/internal/summary"
)

// 对外复用内部类型，调用方无需 import internal 包。
type (
	UserSummary     = summary.UserSummary
	RepoSummary     = summary.RepoSummary
	SolutionSummary = summary.SolutionSummary
	SolutionInfo    = summary.SolutionInfo
	Ident           = ident.Ident
	Document        = page.Document
	Generator       = page.Generator
	FileView        = page.FileView
)

// ParseIdent 拆分 user[/repo[/solution[/file-path...]]] 形式的标识符。
func ParseIdent(raw string) Ident {
	return ident.Parse(raw)
}
