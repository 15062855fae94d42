package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidAnswers 调查数据不是 JSON 对象
var ErrInvalidAnswers = errors.New("survey data must be a JSON object")

// Field 一个题目及其答案
type Field struct {
	Label string
	Value interface{}
}

// Object 保持键顺序的 JSON 对象，题目顺序即问卷顺序
type Object []Field

// Get 按标签取值
func (o Object) Get(label string) (interface{}, bool) {
	for _, f := range o {
		if f.Label == label {
			return f.Value, true
		}
	}
	return nil, false
}

// Labels 返回全部标签
func (o Object) Labels() []string {
	labels := make([]string, len(o))
	for i, f := range o {
		labels[i] = f.Label
	}
	return labels
}

// MarshalJSON 按原顺序输出
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(f.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshalNoEscape(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ParseAnswers 解析调查数据，保留题目顺序；重复键保留首次出现的位置、取最后的值
func ParseAnswers(data []byte) (Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnswers, err)
	}

	obj, ok := v.(Object)
	if !ok {
		return nil, ErrInvalidAnswers
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidAnswers)
	}

	return obj, nil
}

func decodeValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool, nil
		return tok, nil
	}

	switch delim {
	case '{':
		obj := Object{}
		index := map[string]int{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			if i, dup := index[key]; dup {
				obj[i].Value = val
				continue
			}
			index[key] = len(obj)
			obj = append(obj, Field{Label: key, Value: val})
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []interface{}{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}

	return nil, fmt.Errorf("unexpected delimiter %v", delim)
}

func marshalNoEscape(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// prettyJSON 缩进输出，用于嵌套对象的展示
func prettyJSON(v interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
