package mocks

//go:generate go run github.com/golang/mock/mockgen -package mocks -destination log.go -mock_names Handler=LogHandler github.com/xtls/xrelay/common/log Handler
