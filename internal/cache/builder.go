package cache

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/browse-hub/browse-hub/internal/logging"
	"github.com/browse-hub/browse-hub/internal/storage"
	"github.com/browse-hub/browse-hub/internal/summary"
)

// repoSource 让构建器经由 Accessor 解析仓库摘要，而不是直接重建：
// 这样用户级构建会顺带创建/复用仓库级 sidecar。
type repoSource interface {
	Repo(user, repo string) *summary.RepoSummary
}

// Builder 仅依据当前磁盘状态构建摘要对象，从不读取任何缓存副本。
type Builder struct {
	layout storage.Layout
	repos  repoSource
	log    logrus.FieldLogger
}

// NewBuilder 构造 Builder；repos 通常是持有它的 Accessor 自身。
func NewBuilder(layout storage.Layout, repos repoSource, log logrus.FieldLogger) *Builder {
	return &Builder{layout: layout, repos: repos, log: log}
}

// BuildUser 列举用户目录下的仓库并逐个经由 Accessor 展开。目录不存在时
// 返回空仓库列表：没有磁盘存在感的用户是"无数据"，不是错误。
func (b *Builder) BuildUser(name string) *summary.UserSummary {
	dir := b.layout.UserDir(name)
	names, err := storage.ListSubdirs(dir)
	if err != nil {
		b.log.WithFields(logging.CacheFields("user", name, "build", "")).
			Warn(err.Error())
	}

	repos := make([]summary.RepoSummary, 0, len(names))
	for _, repo := range names {
		if rs := b.repos.Repo(name, repo); rs != nil {
			repos = append(repos, *rs)
		}
	}

	return &summary.UserSummary{
		Username: name,
		Path:     dir,
		Repos:    repos,
	}
}

// BuildRepo 仅列举 solution 目录名，不展开为完整摘要，把单次构建的成本
// 限制在一层目录扫描内。空目录策略与 BuildUser 一致。
func (b *Builder) BuildRepo(user, repo string) *summary.RepoSummary {
	dir := b.layout.RepoDir(user, repo)
	names, err := storage.ListSubdirs(dir)
	if err != nil {
		b.log.WithFields(logging.CacheFields("repo", user+"/"+repo, "build", "")).
			Warn(err.Error())
	}
	if names == nil {
		names = []string{}
	}

	return &summary.RepoSummary{
		Name:      repo,
		Username:  user,
		Solutions: names,
	}
}

// BuildSolution 组装 solution 摘要并读取可选的 solutionInfo.json；
// 元数据文件缺失是合法状态，Info 保持 nil。不再向下递归。
func (b *Builder) BuildSolution(user, repo, solution string) *summary.SolutionSummary {
	return &summary.SolutionSummary{
		Name:     solution,
		Path:     b.layout.SolutionRelPath(user, repo, solution),
		RootPath: b.layout.SolutionDir(user, repo, solution),
		Info:     b.readSolutionInfo(user, repo, solution),
		Repo:     b.repos.Repo(user, repo),
	}
}

func (b *Builder) readSolutionInfo(user, repo, solution string) summary.SolutionInfo {
	path := b.layout.SolutionInfoPath(user, repo, solution)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			b.log.WithFields(logging.CacheFields("solution", path, "build", "")).
				Warn(err.Error())
		}
		return nil
	}

	var info summary.SolutionInfo
	if err := json.Unmarshal(data, &info); err != nil {
		b.log.WithFields(logging.CacheFields("solution", path, "build", "")).
			Warn("solution metadata unreadable, treated as absent")
		return nil
	}
	return info
}
