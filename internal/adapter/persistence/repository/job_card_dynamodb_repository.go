package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"garagehub/internal/domain/entities"
	"garagehub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultJobCardsTableName = "job_cards"
	jobNumberCounterPrefix   = "counter#"
)

type jobCardItem struct {
	ID        string `dynamodbav:"id"`
	JobNumber string `dynamodbav:"job_number"`

	CustomerID string `dynamodbav:"customer_id"`
	VehicleID  string `dynamodbav:"vehicle_id"`
	BranchID   string `dynamodbav:"branch_id"`

	ServiceAdvisorID string `dynamodbav:"service_advisor_id,omitempty"`
	TechnicianID     string `dynamodbav:"technician_id,omitempty"`
	DriverID         string `dynamodbav:"driver_id,omitempty"`

	ServiceType string `dynamodbav:"service_type"`
	IntakeType  string `dynamodbav:"intake_type"`
	Status      string `dynamodbav:"status"`

	PickupAddress string `dynamodbav:"pickup_address,omitempty"`
	ScheduledTime string `dynamodbav:"scheduled_time,omitempty"`
	PickupTime    string `dynamodbav:"pickup_time,omitempty"`
	DeliveryTime  string `dynamodbav:"delivery_time,omitempty"`
	CompletedAt   string `dynamodbav:"completed_at,omitempty"`

	LabourTotal       string `dynamodbav:"labour_total"`
	PartsTotal        string `dynamodbav:"parts_total"`
	PickupDeliveryFee string `dynamodbav:"pickup_delivery_fee"`
	DiscountAmount    string `dynamodbav:"discount_amount"`
	TaxAmount         string `dynamodbav:"tax_amount"`
	GrandTotal        string `dynamodbav:"grand_total"`
	AmountPaid        string `dynamodbav:"amount_paid"`
	BalanceDue        string `dynamodbav:"balance_due"`

	NeedsParts bool   `dynamodbav:"needs_parts"`
	RFQID      string `dynamodbav:"rfq_id,omitempty"`

	EstimateApproved   string `dynamodbav:"estimate_approved"`
	PartsApproved      string `dynamodbav:"parts_approved"`
	EstimateApprovedAt string `dynamodbav:"estimate_approved_at,omitempty"`
	PartsApprovedAt    string `dynamodbav:"parts_approved_at,omitempty"`

	CustomerNotes string `dynamodbav:"customer_notes,omitempty"`
	CancelReason  string `dynamodbav:"cancel_reason,omitempty"`

	CustomerRating      int    `dynamodbav:"customer_rating,omitempty"`
	CustomerFeedback    string `dynamodbav:"customer_feedback,omitempty"`
	FeedbackSubmittedAt string `dynamodbav:"feedback_submitted_at,omitempty"`

	Version   int64  `dynamodbav:"version"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// JobCardDynamoRepository persists JobCard aggregates in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Concurrency model: every mutation is a whole-item PutItem conditioned on
// the version the caller read (optimistic lock). Payment commits go through
// TransactWriteItems so the ledger entry and the job update land together.
// Job-number sequences live in the same table under counter#<day> items.

type JobCardDynamoRepository struct {
	ddb           *dynamodb.Client
	tableName     string
	paymentsTable string
}

var _ interfaces.IJobCardRepository = (*JobCardDynamoRepository)(nil)

func NewJobCardDynamoRepository(ddb *dynamodb.Client) *JobCardDynamoRepository {
	return &JobCardDynamoRepository{
		ddb:           ddb,
		tableName:     getenvDefault("JOB_CARDS_TABLE", defaultJobCardsTableName),
		paymentsTable: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *JobCardDynamoRepository) Create(ctx context.Context, j entities.JobCard) (entities.JobCard, error) {
	av, err := attributevalue.MarshalMap(toJobCardItem(j))
	if err != nil {
		return entities.JobCard{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.JobCard{}, err
	}
	return j, nil
}

func (r *JobCardDynamoRepository) GetByID(ctx context.Context, id string) (entities.JobCard, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.JobCard{}, err
	}
	if len(out.Item) == 0 {
		return entities.JobCard{}, nil
	}

	var it jobCardItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.JobCard{}, err
	}
	return fromJobCardItem(it), nil
}

func (r *JobCardDynamoRepository) Update(ctx context.Context, j entities.JobCard, expectedVersion int64) (entities.JobCard, error) {
	av, err := attributevalue.MarshalMap(toJobCardItem(j))
	if err != nil {
		return entities.JobCard{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("#version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.JobCard{}, interfaces.ErrVersionConflict
		}
		return entities.JobCard{}, err
	}
	return j, nil
}

func (r *JobCardDynamoRepository) CommitPayment(ctx context.Context, j entities.JobCard, expectedVersion int64, p entities.Payment) (entities.JobCard, error) {
	jobAV, err := attributevalue.MarshalMap(toJobCardItem(j))
	if err != nil {
		return entities.JobCard{}, err
	}
	payAV, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.JobCard{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                jobAV,
					ConditionExpression: aws.String("#version = :expected"),
					ExpressionAttributeNames: map[string]string{
						"#version": "version",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
					},
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(r.paymentsTable),
					Item:                payAV,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			for _, reason := range tce.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return entities.JobCard{}, interfaces.ErrVersionConflict
				}
			}
		}
		return entities.JobCard{}, err
	}
	return j, nil
}

func (r *JobCardDynamoRepository) NextJobSequence(ctx context.Context, day string) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: jobNumberCounterPrefix + day},
		},
		UpdateExpression: aws.String("ADD #seq :one"),
		ExpressionAttributeNames: map[string]string{
			"#seq": "seq",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	n, ok := out.Attributes["seq"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, errors.New("job number counter returned no sequence")
	}
	return strconv.ParseInt(n.Value, 10, 64)
}

func toJobCardItem(j entities.JobCard) jobCardItem {
	return jobCardItem{
		ID:                  j.ID,
		JobNumber:           j.JobNumber,
		CustomerID:          j.CustomerID,
		VehicleID:           j.VehicleID,
		BranchID:            j.BranchID,
		ServiceAdvisorID:    j.ServiceAdvisorID,
		TechnicianID:        j.TechnicianID,
		DriverID:            j.DriverID,
		ServiceType:         string(j.ServiceType),
		IntakeType:          string(j.IntakeType),
		Status:              string(j.Status),
		PickupAddress:       j.PickupAddress,
		ScheduledTime:       timePtrToString(j.ScheduledTime),
		PickupTime:          timePtrToString(j.PickupTime),
		DeliveryTime:        timePtrToString(j.DeliveryTime),
		CompletedAt:         timePtrToString(j.CompletedAt),
		LabourTotal:         j.LabourTotal.StringFixed(2),
		PartsTotal:          j.PartsTotal.StringFixed(2),
		PickupDeliveryFee:   j.PickupDeliveryFee.StringFixed(2),
		DiscountAmount:      j.DiscountAmount.StringFixed(2),
		TaxAmount:           j.TaxAmount.StringFixed(2),
		GrandTotal:          j.GrandTotal.StringFixed(2),
		AmountPaid:          j.AmountPaid.StringFixed(2),
		BalanceDue:          j.BalanceDue.StringFixed(2),
		NeedsParts:          j.NeedsParts,
		RFQID:               j.RFQID,
		EstimateApproved:    string(j.EstimateApproved),
		PartsApproved:       string(j.PartsApproved),
		EstimateApprovedAt:  timePtrToString(j.EstimateApprovedAt),
		PartsApprovedAt:     timePtrToString(j.PartsApprovedAt),
		CustomerNotes:       j.CustomerNotes,
		CancelReason:        j.CancelReason,
		CustomerRating:      j.CustomerRating,
		CustomerFeedback:    j.CustomerFeedback,
		FeedbackSubmittedAt: timePtrToString(j.FeedbackSubmittedAt),
		Version:             j.Version,
		CreatedAt:           j.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:           j.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromJobCardItem(it jobCardItem) entities.JobCard {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.JobCard{
		ID:                  it.ID,
		JobNumber:           it.JobNumber,
		CustomerID:          it.CustomerID,
		VehicleID:           it.VehicleID,
		BranchID:            it.BranchID,
		ServiceAdvisorID:    it.ServiceAdvisorID,
		TechnicianID:        it.TechnicianID,
		DriverID:            it.DriverID,
		ServiceType:         entities.ServiceType(it.ServiceType),
		IntakeType:          entities.IntakeType(it.IntakeType),
		Status:              entities.JobStatus(it.Status),
		PickupAddress:       it.PickupAddress,
		ScheduledTime:       stringToTimePtr(it.ScheduledTime),
		PickupTime:          stringToTimePtr(it.PickupTime),
		DeliveryTime:        stringToTimePtr(it.DeliveryTime),
		CompletedAt:         stringToTimePtr(it.CompletedAt),
		LabourTotal:         decimalFromString(it.LabourTotal),
		PartsTotal:          decimalFromString(it.PartsTotal),
		PickupDeliveryFee:   decimalFromString(it.PickupDeliveryFee),
		DiscountAmount:      decimalFromString(it.DiscountAmount),
		TaxAmount:           decimalFromString(it.TaxAmount),
		GrandTotal:          decimalFromString(it.GrandTotal),
		AmountPaid:          decimalFromString(it.AmountPaid),
		BalanceDue:          decimalFromString(it.BalanceDue),
		NeedsParts:          it.NeedsParts,
		RFQID:               it.RFQID,
		EstimateApproved:    entities.ApprovalState(it.EstimateApproved),
		PartsApproved:       entities.ApprovalState(it.PartsApproved),
		EstimateApprovedAt:  stringToTimePtr(it.EstimateApprovedAt),
		PartsApprovedAt:     stringToTimePtr(it.PartsApprovedAt),
		CustomerNotes:       it.CustomerNotes,
		CancelReason:        it.CancelReason,
		CustomerRating:      it.CustomerRating,
		CustomerFeedback:    it.CustomerFeedback,
		FeedbackSubmittedAt: stringToTimePtr(it.FeedbackSubmittedAt),
		Version:             it.Version,
		CreatedAt:           createdAt,
		UpdatedAt:           updatedAt,
	}
}

func timePtrToString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func stringToTimePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}

func decimalFromString(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
