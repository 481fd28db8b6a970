package logging

import "github.com/sirupsen/logrus"

// BaseFields 构建 action + 配置路径等基础字段，便于不同入口复用。
func BaseFields(action, configPath string) logrus.Fields {
	return logrus.Fields{
		"action":     action,
		"configPath": configPath,
	}
}

// CacheFields 提供层级/键/来源字段，供缓存读写日志复用。source 标记摘要
// 来自 sidecar 还是实时重建，refreshID 仅在后台刷新时非空。
func CacheFields(level, key, source, refreshID string) logrus.Fields {
	fields := logrus.Fields{
		"level":  level,
		"key":    key,
		"source": source,
	}
	if refreshID != "" {
		fields["refresh_id"] = refreshID
	}
	return fields
}
