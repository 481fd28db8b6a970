// Package storage is the filesystem collaborator: it owns the on-disk layout
// of the storage root (user/repo/solution directories plus their sidecar
// files) and exposes the listing/existence primitives the cache core builds
// summaries from. No caching logic lives here.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

const (
	userSidecarName  = "user.data"
	repoSidecarName  = "repo.data"
	solutionInfoName = "solutionInfo.json"
)

// Layout 以固定存储根目录为基准计算所有层级路径，整个进程复用一份实例。
type Layout struct {
	root string
}

// NewLayout 解析并创建存储根目录，root 为空时返回错误。
func NewLayout(root string) (Layout, error) {
	if root == "" {
		return Layout{}, errors.New("storage root required")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return Layout{}, fmt.Errorf("resolve storage root: %w", err)
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return Layout{}, fmt.Errorf("create storage root: %w", err)
	}

	return Layout{root: abs}, nil
}

// Root 返回解析后的存储根绝对路径。
func (l Layout) Root() string {
	return l.root
}

// UserDir 返回某个用户命名空间的目录路径。
func (l Layout) UserDir(user string) string {
	return filepath.Join(l.root, user)
}

// RepoDir 返回某个仓库的目录路径。
func (l Layout) RepoDir(user, repo string) string {
	return filepath.Join(l.root, user, repo)
}

// SolutionDir 返回某个 solution 的目录路径。
func (l Layout) SolutionDir(user, repo, solution string) string {
	return filepath.Join(l.root, user, repo, solution)
}

// SolutionRelPath 返回 solution 相对存储根的斜杠路径，供前端拼接链接使用。
func (l Layout) SolutionRelPath(user, repo, solution string) string {
	return path.Join(user, repo, solution)
}

// UserSidecar 返回用户级摘要的 sidecar 文件路径（<user>/user.data）。
func (l Layout) UserSidecar(user string) string {
	return filepath.Join(l.UserDir(user), userSidecarName)
}

// RepoSidecar 返回仓库级摘要的 sidecar 文件路径（<user>/<repo>/repo.data）。
func (l Layout) RepoSidecar(user, repo string) string {
	return filepath.Join(l.RepoDir(user, repo), repoSidecarName)
}

// SolutionInfoPath 返回 solution 元数据文件路径（solutionInfo.json）。
func (l Layout) SolutionInfoPath(user, repo, solution string) string {
	return filepath.Join(l.SolutionDir(user, repo, solution), solutionInfoName)
}

// FilePath 把标识符尾部的 file-path 段映射到 solution 目录下的绝对路径，
// 并拒绝越出 solution 目录的相对路径。
func (l Layout) FilePath(user, repo, solution, rel string) (string, error) {
	if rel == "" {
		return "", errors.New("file path required")
	}

	cleaned := path.Clean(strings.TrimPrefix(rel, "/"))
	if cleaned == "" || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("invalid file path")
	}

	dir := l.SolutionDir(user, repo, solution)
	full := filepath.Join(dir, filepath.FromSlash(cleaned))
	if !strings.HasPrefix(full, dir+string(filepath.Separator)) {
		return "", errors.New("invalid file path")
	}
	return full, nil
}

// ListSubdirs 返回 dir 下所有子目录名（字典序）。目录不存在视为空列表，
// 因为没有磁盘存在感的层级表示"无数据"而非错误。
func ListSubdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// FileExists 仅做元数据级检查，供每次缓存读取前的轻量探测使用。
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
