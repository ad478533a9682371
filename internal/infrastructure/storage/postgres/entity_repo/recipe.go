package entity_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"bakehouse/internal/core/id"
	"bakehouse/internal/domain/recipe"
	"bakehouse/internal/domain/scope"
	"bakehouse/internal/infrastructure/storage/postgres"
)

const recipeLineTable = "recipe_lines"

var _ recipe.Repository = (*RecipeLineRepo)(nil)

// RecipeLineRepo implements recipe.Repository.
type RecipeLineRepo struct {
	*BaseRepo[*recipe.Line]
}

// NewRecipeLineRepo creates a new recipe line repository.
func NewRecipeLineRepo(txm *postgres.TxManager) *RecipeLineRepo {
	return &RecipeLineRepo{
		BaseRepo: NewBaseRepo(txm, BaseRepoConfig[*recipe.Line]{
			TableName:  recipeLineTable,
			SelectCols: postgres.ExtractDBColumns[recipe.Line](),
			New:        func() *recipe.Line { return &recipe.Line{} },
		}),
	}
}

// FindByProduct retrieves recipe lines of a product under the scope.
func (r *RecipeLineRepo) FindByProduct(ctx context.Context, sc scope.Scope, productID id.ID) ([]*recipe.Line, error) {
	return r.SelectWhere(ctx, sc, squirrel.Eq{"product_id": productID})
}
