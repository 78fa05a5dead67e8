package jsonutil

import (
	"bytes"
	"encoding/json"
	"os"
	"regexp"

	"evtc/pkg/errno"
)

// inlineJSON 去掉行首空白后以 { 或 [ 开头的输入视为内联 JSON
var inlineJSON = regexp.MustCompile(`^[ \t\r\n]*[{[]`)

// IsInlineJSON 判断输入是内联 JSON 还是文件路径。
// 名字恰好以 { 开头的文件无法用这种方式引用，需写成 ./{name}。
func IsInlineJSON(s string) bool {
	return inlineJSON.MatchString(s)
}

// Read 返回 JSON 文本：内联内容原样返回，否则读取文件
func Read(fileOrString string) ([]byte, error) {
	if IsInlineJSON(fileOrString) {
		return []byte(fileOrString), nil
	}
	data, err := os.ReadFile(fileOrString)
	if err != nil {
		return nil, errno.ErrParse.Wrap(err, "read %s", fileOrString)
	}
	return data, nil
}

// Load 读取并解析到 out。kind 为出错时使用的错误类别。
func Load(fileOrString string, out interface{}, kind errno.Errno) error {
	data, err := Read(fileOrString)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return kind.Wrap(err, "%s", describe(fileOrString))
	}
	return nil
}

// LoadRaw 读取并校验为合法 JSON，不做结构解析
func LoadRaw(fileOrString string) (json.RawMessage, error) {
	data, err := Read(fileOrString)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, errno.ErrParse.New("%s is not valid JSON", describe(fileOrString))
	}
	return json.RawMessage(data), nil
}

// Pretty 以两个空格缩进输出，json.RawMessage 保留原有字段顺序
func Pretty(v interface{}) ([]byte, error) {
	if raw, ok := v.(json.RawMessage); ok {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return json.MarshalIndent(v, "", "  ")
}

func describe(fileOrString string) string {
	if IsInlineJSON(fileOrString) {
		if len(fileOrString) > 64 {
			return "inline JSON " + fileOrString[:61] + "..."
		}
		return "inline JSON " + fileOrString
	}
	return "file " + fileOrString
}
