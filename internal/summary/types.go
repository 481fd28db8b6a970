// Package summary defines the persisted summary hierarchy: one UserSummary
// per account namespace, one RepoSummary per repository below it, and one
// SolutionSummary per solution directory. Instances are value objects built
// either from a sidecar file or from a live directory scan; the two forms are
// structurally interchangeable and never mutated after construction.
package summary

// UserSummary 描述一个用户命名空间及其名下所有仓库的摘要。
// Repos 按目录列举顺序（字典序）排列，反映最近一次成功构建时的磁盘状态。
type UserSummary struct {
	Username string        `json:"username"`
	Path     string        `json:"path"`
	Repos    []RepoSummary `json:"repos"`
}

// RepoSummary 描述单个仓库；Solutions 仅保存名称列表，不展开为完整摘要。
type RepoSummary struct {
	Name      string   `json:"name"`
	Username  string   `json:"username"`
	Solutions []string `json:"solutions"`
}

// SolutionSummary 描述单个 solution 目录。Path 为相对存储根的斜杠路径
// （user/repo/solution），RootPath 为磁盘绝对路径。Info 在磁盘上没有
// solutionInfo.json 时为 nil，这是合法状态而非错误。
type SolutionSummary struct {
	Name     string       `json:"name"`
	Path     string       `json:"path"`
	RootPath string       `json:"root_path"`
	Info     SolutionInfo `json:"info,omitempty"`

	// Repo 指向所属仓库摘要，仅存在于内存中，不参与序列化。
	Repo *RepoSummary `json:"-"`
}

// SolutionInfo 是 solutionInfo.json 的不透明键值文档，结构由生成端决定。
type SolutionInfo map[string]any
