// Package cinerec 是一个电影推荐系统工具包（Cinema Recommender Kit）。
//
// 设计要点：
// - 混合推荐: SVD 协同过滤 + 基于内容的类型画像，按用户冷热自动切换
// - Pipeline-first: 推荐链路通过 Node 串联（Recall → Filter → ReRank → PostProcess）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
// - 可解释: 每条预测携带方法标签与置信度，推荐结果可生成自然语言解释
package cinerec

import "github.com/rushteam/cinerec/pipeline"

// 轻量 facade：便于用户直接 import "cinerec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
