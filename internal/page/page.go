// Package page assembles file-level views for the front-end: it resolves the
// identifier's file-path tail inside a solution directory, asks the external
// generator collaborator for rendered content, and attaches the solution
// summary from the cache. This sits outside the self-absorbing cache core,
// so failures here surface as ordinary errors.
package page

import (
	"errors"
	"fmt"

	"github.com/browse-hub/browse-hub/internal/ident"
	"github.com/browse-hub/browse-hub/internal/storage"
	"github.com/browse-hub/browse-hub/internal/summary"
)

// Document 是生成器产出的可浏览文档：渲染后的内容与行数。
type Document interface {
	Content() string
	Lines() int
}

// Generator 是外部生成器协作方，负责把磁盘文件渲染为 Document。
type Generator interface {
	Generate(path string) (Document, error)
}

// solutionSource 由缓存 Accessor 实现，page 只消费不实现。
type solutionSource interface {
	Solution(user, repo, solution string) *summary.SolutionSummary
}

// FileView 是一次文件级浏览请求的装配结果。
type FileView struct {
	Solution *summary.SolutionSummary
	FilePath string
	Content  string
	Lines    int
}

// BuildFileView 校验标识符、解析文件绝对路径并调用生成器装配 FileView。
func BuildFileView(src solutionSource, layout storage.Layout, gen Generator, id ident.Ident) (*FileView, error) {
	if id.User == "" || id.Repo == "" || id.Solution == "" || id.FilePath == "" {
		return nil, errors.New("file identifier incomplete")
	}
	if gen == nil {
		return nil, errors.New("generator required")
	}

	full, err := layout.FilePath(id.User, id.Repo, id.Solution, id.FilePath)
	if err != nil {
		return nil, err
	}

	doc, err := gen.Generate(full)
	if err != nil {
		return nil, fmt.Errorf("generate document: %w", err)
	}

	return &FileView{
		Solution: src.Solution(id.User, id.Repo, id.Solution),
		FilePath: id.FilePath,
		Content:  doc.Content(),
		Lines:    doc.Lines(),
	}, nil
}
