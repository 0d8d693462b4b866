// Package matrixrain 持有程序的嵌入数据
//
// //go:embed 只能嵌入当前包目录及其子目录的文件，
// 因此声明必须放在项目根目录（与 data/ 同级）。
// 各个宿主（cmd/、mobile/）通过 embedded.Init(matrixrain.DataFS) 使用。
package matrixrain

import "embed"

// DataFS 默认配置与主题，路径形如 data/rain.yaml
//
//go:embed data/rain.yaml data/themes
var DataFS embed.FS
