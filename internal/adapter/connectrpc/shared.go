package connectrpc

import (
	"fmt"
	"math"

	"github.com/eslsoft/learnmode/internal/repository"
)

const _maxPageSize = 10000

func convertPagination(p *PaginationRequest) repository.Pagination {
	var pageNo, pageSize int32
	if p != nil {
		pageNo, pageSize = p.PageNo, p.PageSize
	}
	if pageNo <= 0 {
		pageNo = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > _maxPageSize {
		pageSize = _maxPageSize
	}

	return repository.Pagination{PageNo: pageNo, PageSize: pageSize}
}

func safeInt32(name string, value int64) (int32, error) {
	if value > math.MaxInt32 || value < math.MinInt32 {
		return 0, fmt.Errorf("%s out of int32 range: %d", name, value)
	}
	return int32(value), nil
}
