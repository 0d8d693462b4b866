//go:build !mobile

// 非移动端构建时包内只剩 Dummy。
// 移动端入口见 mobile.go（-tags mobile），嵌入资源来自 matrixrain.DataFS。
package mobile

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
