package service

import (
	"context"
	"testing"
	"time"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/domain/document"
	"github.com/afyastaff/afyastaff/internal/domain/staff"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/stretchr/testify/suite"
)

type DocumentServiceSuite struct {
	ServiceSuite
	service     DocumentService
	ownerCtx    context.Context
	employeeCtx context.Context
	employee    *staff.Staff
}

func TestDocumentService(t *testing.T) {
	suite.Run(t, new(DocumentServiceSuite))
}

func (s *DocumentServiceSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.service = NewDocumentService(s.params)
	s.ownerCtx, _ = s.signup(types.PlanStarter)
	s.employeeCtx, s.employee = s.addStaff(s.ownerCtx, types.SystemRoleEmployee)
}

func (s *DocumentServiceSuite) create(title string, requiresAck bool) *document.PolicyDocument {
	doc, err := s.service.CreateDocument(s.ownerCtx, dto.CreateDocumentRequest{
		Title:                   title,
		FileURL:                 "https://files.afyastaff.co.ke/policies/" + s.GetUUID() + ".pdf",
		RequiresAcknowledgement: requiresAck,
	})
	s.Require().NoError(err)
	return doc
}

func (s *DocumentServiceSuite) TestCreateDocument() {
	doc := s.create("Infection Control", true)
	s.Equal(1, doc.Version)

	_, err := s.service.CreateDocument(s.ownerCtx, dto.CreateDocumentRequest{Title: "No file", FileURL: "not a url"})
	s.True(ierr.IsValidation(err))

	_, err = s.service.CreateDocument(s.employeeCtx, dto.CreateDocumentRequest{
		Title:   "Sneaky",
		FileURL: "https://example.com/a.pdf",
	})
	s.True(ierr.IsPermissionDenied(err))

	docs, err := s.service.ListDocuments(s.employeeCtx)
	s.Require().NoError(err)
	s.Equal(1, docs.Total)
}

func (s *DocumentServiceSuite) TestAcknowledge_Idempotent() {
	doc := s.create("Code of Conduct", true)

	first, err := s.service.Acknowledge(s.employeeCtx, doc.ID)
	s.Require().NoError(err)
	s.Equal(s.employee.ID, first.StaffID)
	s.Equal(doc.Version, first.DocumentVersion)

	s.GetClock().Advance(time.Hour)
	second, err := s.service.Acknowledge(s.employeeCtx, doc.ID)
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
	s.True(first.AcknowledgedAt.Equal(second.AcknowledgedAt))

	acks, err := s.service.ListAcknowledgements(s.ownerCtx, doc.ID)
	s.Require().NoError(err)
	s.Equal(1, acks.Total)

	_, err = s.service.ListAcknowledgements(s.employeeCtx, doc.ID)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *DocumentServiceSuite) TestAcknowledge_UnknownDocument() {
	_, err := s.service.Acknowledge(s.employeeCtx, "doc_missing")
	s.True(ierr.IsNotFound(err))

	otherCtx, _ := s.signup(types.PlanStarter)
	foreign, err := s.service.CreateDocument(otherCtx, dto.CreateDocumentRequest{
		Title:   "Foreign",
		FileURL: "https://example.com/foreign.pdf",
	})
	s.Require().NoError(err)
	_, err = s.service.Acknowledge(s.employeeCtx, foreign.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *DocumentServiceSuite) TestPendingForStaff() {
	handbook := s.create("Handbook", true)
	s.create("Canteen Menu", false)
	safety := s.create("Fire Safety", true)

	pending, err := s.service.PendingForStaff(s.employeeCtx, "")
	s.Require().NoError(err)
	s.Equal(2, pending.Total)

	_, err = s.service.Acknowledge(s.employeeCtx, handbook.ID)
	s.Require().NoError(err)

	pending, err = s.service.PendingForStaff(s.ownerCtx, s.employee.ID)
	s.Require().NoError(err)
	s.Require().Equal(1, pending.Total)
	s.Equal(safety.ID, pending.Items[0].ID)

	_, err = s.service.PendingForStaff(s.employeeCtx, "staff_someone_else")
	s.True(ierr.IsPermissionDenied(err))
}
