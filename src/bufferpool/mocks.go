package bufferpool

import (
	"github.com/stretchr/testify/mock"

	"github.com/Blackdeer1524/pagecache/src/pkg/common"
	"github.com/Blackdeer1524/pagecache/src/storage/page"
)

// MockPageFile is a testify mock of PageFile. ID and Name are fixed at
// construction so that they do not need expectations.
type MockPageFile struct {
	mock.Mock

	id   common.FileID
	name string
}

var _ PageFile = &MockPageFile{}

func NewMockPageFile(id common.FileID, name string) *MockPageFile {
	return &MockPageFile{id: id, name: name}
}

func (m *MockPageFile) ID() common.FileID {
	return m.id
}

func (m *MockPageFile) Name() string {
	return m.name
}

func (m *MockPageFile) ReadPage(pageNo common.PageID) (page.Page, error) {
	args := m.Called(pageNo)
	return args.Get(0).(page.Page), args.Error(1)
}

func (m *MockPageFile) WritePage(p *page.Page) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockPageFile) AllocatePage() (page.Page, error) {
	args := m.Called()
	return args.Get(0).(page.Page), args.Error(1)
}

func (m *MockPageFile) DeletePage(pageNo common.PageID) error {
	args := m.Called(pageNo)
	return args.Error(0)
}
