// Package ratelimit 按 (策略, 客户端) 做固定窗口计数。
//
// 窗口从某个 key 的第一次放行开始计时，持续 Policy.Window；过期后下一次访问
// 重新开窗（惰性回收），另有 Cleanup/StartJanitor 清掉长期不活跃的 key。
// 被拒绝的请求不占额度。固定窗口在边界处最多放过 2N 个请求，这是已知且接受的。
//
// 计数分散在 64 个分片里，每个分片一把锁；同一个 key 的检查+自增在一次临界区内
// 完成，不会出现两个并发请求同时看到"还剩一个名额"。
package ratelimit
