// Package sync pulls staff, clients, jobs and time entries from the
// upstream practice-management API, reconciles them into the local
// database and republishes snapshots onto the message bus.
package sync

import (
	"github.com/neomatrix/timekeeper/internal/model"
	"github.com/neomatrix/timekeeper/internal/upstream"
)

func mapStaff(rec upstream.StaffRecord) *model.Staff {
	return &model.Staff{
		UUID:        rec.UUID,
		Name:        rec.Name,
		Email:       rec.Email,
		Mobile:      rec.Mobile,
		Phone:       rec.Phone,
		PayrollCode: rec.PayrollCode,
		WebURL:      rec.WebURL,
	}
}

func mapClient(rec upstream.ClientRecord) *model.Client {
	return &model.Client{
		UUID:               rec.UUID,
		Name:               rec.Name,
		Email:              rec.Email,
		Phone:              rec.Phone,
		Fax:                rec.Fax,
		Website:            rec.Website,
		Address:            rec.Address,
		City:               rec.City,
		Region:             rec.Region,
		PostCode:           rec.PostCode,
		Country:            rec.Country,
		IsProspect:         upstream.IsTrue(rec.IsProspect),
		IsArchived:         upstream.IsTrue(rec.IsArchived),
		IsDeleted:          upstream.IsTrue(rec.IsDeleted),
		AccountManagerUUID: rec.AccountManager.UUID,
		AccountManagerName: rec.AccountManager.Name,
		JobManagerUUID:     rec.JobManager.UUID,
		JobManagerName:     rec.JobManager.Name,
		TypeName:           rec.TypeName,
		WebURL:             rec.WebURL,
	}
}

func mapContact(clientUUID string, rec upstream.ContactRecord) *model.Contact {
	return &model.Contact{
		UUID:       rec.UUID,
		ClientUUID: clientUUID,
		IsPrimary:  upstream.IsTrue(rec.IsPrimary),
		Name:       rec.Name,
		Salutation: rec.Salutation,
		Addressee:  rec.Addressee,
		Mobile:     rec.Mobile,
		Email:      rec.Email,
		Phone:      rec.Phone,
		Position:   rec.Position,
	}
}

func mapJob(rec upstream.JobRecord) *model.Job {
	return &model.Job{
		JobID:         rec.ID,
		UUID:          rec.UUID,
		Name:          rec.Name,
		Description:   rec.Description,
		State:         rec.State,
		ClientUUID:    rec.Client.UUID,
		ManagerUUID:   rec.Manager.UUID,
		PartnerUUID:   rec.Partner.UUID,
		StartDate:     rec.Start(),
		DueDate:       rec.Due(),
		CompletedDate: rec.Completed(),
		WebURL:        rec.WebURL,
	}
}

func mapTask(jobUUID string, rec upstream.TaskRecord) *model.Task {
	return &model.Task{
		UUID:             rec.UUID,
		JobUUID:          jobUUID,
		Name:             rec.Name,
		Description:      rec.Description,
		EstimatedMinutes: rec.EstimatedMinutes,
		Completed:        upstream.IsTrue(rec.Completed),
		Billable:         upstream.IsTrue(rec.Billable),
	}
}

func mapTime(rec upstream.TimeRecord) *model.Timesheet {
	var invoiceTask *string
	if rec.InvoiceTaskUUID != "" {
		v := rec.InvoiceTaskUUID
		invoiceTask = &v
	}
	ts := &model.Timesheet{
		UUID:            rec.UUID,
		JobID:           rec.Job.ID,
		JobName:         rec.Job.Name,
		TaskUUID:        rec.Task.UUID,
		TaskName:        rec.Task.Name,
		StaffUUID:       rec.Staff.UUID,
		StaffName:       rec.Staff.Name,
		Minutes:         rec.Minutes,
		Note:            rec.Note,
		Billable:        upstream.IsTrue(rec.Billable),
		InvoiceTaskUUID: invoiceTask,
	}
	if d := rec.EntryDate(); d != nil {
		ts.EntryDate = *d
	}
	return ts
}
