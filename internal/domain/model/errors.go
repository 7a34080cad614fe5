package model

import (
	"fmt"
	"time"
)

// ConfigurationLoadError 表示目录或配置加载失败，属于致命错误，
// 在启动阶段抛出并终止整个运行
type ConfigurationLoadError struct {
	Source string // 出错的配置来源（文件路径或配置键）
	Err    error  // 底层错误
}

func (e *ConfigurationLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("配置加载失败 [%s]: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("配置加载失败 [%s]", e.Source)
}

func (e *ConfigurationLoadError) Unwrap() error {
	return e.Err
}

// GenerationTimeoutError 表示单次生成尝试超时，属于可恢复错误，
// 触发下一次重试或降级到兜底合成器
type GenerationTimeoutError struct {
	Attempt int           // 超时发生在第几次尝试
	Timeout time.Duration // 配置的超时时长
}

func (e *GenerationTimeoutError) Error() string {
	return fmt.Sprintf("生成尝试超时 (第%d次尝试, 超时时间%v)", e.Attempt, e.Timeout)
}

// GenerationServiceError 表示外部生成服务返回了模型级别的错误，
// 属于可恢复错误，触发备用模型、下一次尝试或兜底
type GenerationServiceError struct {
	Model string // 出错的模型名称
	Err   error  // 底层错误
}

func (e *GenerationServiceError) Error() string {
	return fmt.Sprintf("生成服务错误 (模型%s): %v", e.Model, e.Err)
}

func (e *GenerationServiceError) Unwrap() error {
	return e.Err
}
