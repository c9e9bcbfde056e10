package service

import (
	"github.com/shopims/shopims-backend/internal/model"
	"github.com/shopims/shopims-backend/internal/report"
	"github.com/shopims/shopims-backend/internal/repository"
)

type ShareService interface {
	CreateShare(req *model.Share, userID string) error
	// ListShares returns all partner shares with their computed ownership
	// percentage against the current capital total.
	ListShares() ([]model.ShareResponse, error)
}

type shareService struct {
	shareRepo repository.ShareRepository
}

func NewShareService(shareRepo repository.ShareRepository) ShareService {
	return &shareService{shareRepo: shareRepo}
}

func (s *shareService) CreateShare(req *model.Share, userID string) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.shareRepo.Create(req)
}

func (s *shareService) ListShares() ([]model.ShareResponse, error) {
	shares, err := s.shareRepo.FindAll()
	if err != nil {
		return nil, err
	}

	totalCapital := report.TotalCapital(shares)
	out := make([]model.ShareResponse, len(shares))
	for i := range shares {
		out[i] = model.ShareResponse{
			Share:      shares[i],
			Percentage: report.Percentage(shares[i].Capital, totalCapital).Round(2),
		}
	}
	return out, nil
}
