package core

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Scanner 按 "组码/值" 两行一组读取 DXF 文本
type Scanner struct {
	reader  *bufio.Reader
	LastTag Tag
	line    int
	err     error
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		reader: bufio.NewReader(r),
	}
}

func (s *Scanner) readLine() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err == io.EOF && line != "" {
		// 最后一行没有换行符
		err = nil
	}
	if err == nil {
		s.line++
	}
	return line, err
}

func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}

	// 1. 读取 Code 行，跳过空行
	var codeStr string
	for codeStr == "" {
		codeLine, err := s.readLine()
		if err != nil {
			if err != io.EOF {
				s.err = err
			}
			return false
		}
		codeStr = strings.TrimSpace(codeLine)
	}

	code, err := strconv.Atoi(codeStr)
	if err != nil {
		s.err = fmt.Errorf("dxf: line %d: invalid group code %q: %w", s.line, codeStr, err)
		return false
	}

	// 2. 读取 Value 行
	valueLine, err := s.readLine()
	if err != nil {
		// Value 行如果 EOF 也是不完整的
		s.err = fmt.Errorf("dxf: line %d: missing value for group code %d: %w", s.line, code, err)
		return false
	}

	// 去掉行尾的换行符，但保留 Value 开头的空格（DXF 规范要求）
	value := strings.TrimRight(valueLine, "\r\n")

	s.LastTag = Tag{Code: code, Value: value}
	return true
}

// Line 返回当前读取到的行号
func (s *Scanner) Line() int {
	return s.line
}

func (s *Scanner) Err() error {
	return s.err
}
