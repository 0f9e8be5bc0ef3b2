package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-otp-signup/internal/config"
	"github.com/go-otp-signup/internal/domain"
	"github.com/go-otp-signup/internal/pkg/id"
)

// AccountRepo stores accounts in one table per role.
// PK: email, so a conditional put keeps emails unique within a table.
type AccountRepo struct {
	client *dynamodb.Client
	tables config.DynamoTables
}

func NewAccountRepo(client *dynamodb.Client, tables config.DynamoTables) *AccountRepo {
	return &AccountRepo{client: client, tables: tables}
}

func (r *AccountRepo) Insert(ctx context.Context, role domain.Role, a *domain.Account) (string, error) {
	if a.AccountID == "" {
		a.AccountID = id.At(a.CreatedAt)
	}
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return "", fmt.Errorf("marshal account: %w", err)
	}
	item[attrCollection] = &types.AttributeValueMemberS{Value: string(role.Collection())}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(tableFor(r.tables, role)),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#e)"),
		ExpressionAttributeNames: map[string]string{"#e": attrEmail},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return "", fmt.Errorf("email %s already registered: %w", a.Email, domain.ErrConflict)
		}
		return "", err
	}
	a.Role = role.Collection()
	return a.AccountID, nil
}

func (r *AccountRepo) FindByCredentials(ctx context.Context, role domain.Role, email, password string) (*domain.Account, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(tableFor(r.tables, role)),
		Key:            strKey(attrEmail, email),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	var a domain.Account
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, fmt.Errorf("unmarshal account: %w", err)
	}
	if a.Password != password {
		return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	a.Role = role.Collection()
	return &a, nil
}

// List returns up to limit accounts, newest first, by querying the
// collection index in descending account_id order.
func (r *AccountRepo) List(ctx context.Context, role domain.Role, limit int) ([]domain.Account, error) {
	coll := role.Collection()
	input := &dynamodb.QueryInput{
		TableName:                aws.String(tableFor(r.tables, role)),
		IndexName:                aws.String(indexNewest),
		KeyConditionExpression:   aws.String("#c = :c"),
		ExpressionAttributeNames: map[string]string{"#c": attrCollection},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: string(coll)},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(limit))
	}

	accounts := make([]domain.Account, 0)
	pages := dynamodb.NewQueryPaginator(r.client, input)
	for pages.HasMorePages() && (limit <= 0 || len(accounts) < limit) {
		out, err := pages.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var page []domain.Account
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal accounts: %w", err)
		}
		accounts = append(accounts, page...)
	}
	if limit > 0 && len(accounts) > limit {
		accounts = accounts[:limit]
	}
	for i := range accounts {
		accounts[i].Role = coll
	}
	return accounts, nil
}

// Ping checks that the users table is reachable.
func (r *AccountRepo) Ping(ctx context.Context) error {
	_, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(r.tables.Users),
	})
	return err
}
