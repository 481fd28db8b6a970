package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/natefinch/atomic"
)

// Sidecar 读取错误，两者均可恢复：缺失触发构建，损坏触发原地重建。
var (
	errSidecarMissing = errors.New("sidecar file not found")
	errSidecarCorrupt = errors.New("sidecar file corrupted")
)

// SidecarCodec 负责摘要对象与 sidecar 文件之间的序列化，以及基于文件
// 年龄的新鲜度判定。阈值来自配置，不在此处写死。
type SidecarCodec struct {
	ttl time.Duration
	now func() time.Time
}

// NewSidecarCodec 构造编解码器，默认使用 time.Now 作为时钟。
func NewSidecarCodec(ttl time.Duration) SidecarCodec {
	return SidecarCodec{ttl: ttl, now: time.Now}
}

// Write 将摘要序列化为 JSON 并通过临时文件 + rename 原子写入 path，
// 覆盖任何已有内容。并发读者因此只会看到完整的新旧两种字节之一。
func (c SidecarCodec) Write(v any, path string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode sidecar: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	return nil
}

// Fresh 仅做 stat 级检查：文件年龄低于阈值即视为新鲜，缺失文件永远不新鲜。
// 该函数位于每次缓存读取的热路径上，不允许产生副作用。
func (c SidecarCodec) Fresh(path string) bool {
	if c.ttl <= 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return c.now().Before(info.ModTime().Add(c.ttl))
}

// readSidecar 解析 path 处的 sidecar 文件。缺失与损坏（不可读、JSON 非法、
// 部分写入）分别映射到对应哨兵错误，调用方据此选择构建或重建。
func readSidecar[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errSidecarMissing
		}
		return nil, fmt.Errorf("%w: %v", errSidecarCorrupt, err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", errSidecarCorrupt, err)
	}
	return &v, nil
}
