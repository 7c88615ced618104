package services

import "errors"

// 外部服务错误分类。这些错误全部在服务层内部消化：
// 子任务生成失败走启发式回退，翻译失败表现为"未应用翻译"，
// 都不会作为硬错误抛到控制器层。
var (
	// ErrServiceUnavailable 网络、超时或鉴权失败
	ErrServiceUnavailable = errors.New("external service unavailable")

	// ErrUnparseableResponse 生成服务返回了无法解析的内容
	ErrUnparseableResponse = errors.New("generation response not parseable")

	// ErrNoMatch 语言目录中没有精确匹配，结果来自启发式猜测
	ErrNoMatch = errors.New("no exact language match")
)
