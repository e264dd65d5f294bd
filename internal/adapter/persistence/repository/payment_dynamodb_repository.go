package repository

import (
	"context"
	"sort"
	"time"

	"garagehub/internal/domain/entities"
	"garagehub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsJobCardIDIndex   = "job_card_id-index"
)

type paymentItem struct {
	ID                   string `dynamodbav:"id"`
	PaymentNumber        string `dynamodbav:"payment_number"`
	JobCardID            string `dynamodbav:"job_card_id"`
	Amount               string `dynamodbav:"amount"`
	Currency             string `dynamodbav:"currency"`
	Method               string `dynamodbav:"method"`
	RecordedByID         string `dynamodbav:"recorded_by_id"`
	Notes                string `dynamodbav:"notes,omitempty"`
	Reversal             bool   `dynamodbav:"reversal"`
	GatewayTransactionID string `dynamodbav:"gateway_transaction_id,omitempty"`
	GatewayResponseRaw   string `dynamodbav:"gateway_response_raw,omitempty"`
	CreatedAt            string `dynamodbav:"created_at"`
}

// PaymentDynamoRepository persists payment ledger entries in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: job_card_id-index (PK: job_card_id)
//
// Entries are append-only; the repository exposes no update or delete.

type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Append(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
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
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) ListByJobID(ctx context.Context, jobID string) ([]entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsJobCardIDIndex),
		KeyConditionExpression: aws.String("job_card_id = :jid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":jid": &types.AttributeValueMemberS{Value: jobID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Payment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPaymentItem(it))
	}
	sort.Slice(items, func(i, k int) bool { return items[i].CreatedAt.Before(items[k].CreatedAt) })
	return items, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                   p.ID,
		PaymentNumber:        p.PaymentNumber,
		JobCardID:            p.JobCardID,
		Amount:               p.Amount.StringFixed(2),
		Currency:             p.Currency,
		Method:               string(p.Method),
		RecordedByID:         p.RecordedByID,
		Notes:                p.Notes,
		Reversal:             p.Reversal,
		GatewayTransactionID: p.GatewayTransactionID,
		GatewayResponseRaw:   string(p.GatewayResponseRaw),
		CreatedAt:            p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Payment{
		ID:                   it.ID,
		PaymentNumber:        it.PaymentNumber,
		JobCardID:            it.JobCardID,
		Amount:               decimalFromString(it.Amount),
		Currency:             it.Currency,
		Method:               entities.PaymentMethod(it.Method),
		RecordedByID:         it.RecordedByID,
		Notes:                it.Notes,
		Reversal:             it.Reversal,
		GatewayTransactionID: it.GatewayTransactionID,
		GatewayResponseRaw:   []byte(it.GatewayResponseRaw),
		CreatedAt:            createdAt,
	}
}
