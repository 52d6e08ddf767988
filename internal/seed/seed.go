// Package seed loads the standard measurement, ingredient, and category
// catalogs into an empty store. Run is idempotent: each table is only
// populated when it has no rows.
package seed

import (
	"context"
	"fmt"

	"github.com/bensuskins/grocery-engine/internal/models"
	"github.com/bensuskins/grocery-engine/internal/repository"
)

// Volume is based in milliliters, weight in grams, count in pieces.
// Special and container units are pseudo-units for non-convertible counting.
var StandardMeasurements = []models.MeasurementUnit{
	{Name: "ml", Category: models.UnitVolume, BaseConversion: 1, DisplayName: "milliliter"},
	{Name: "l", Category: models.UnitVolume, BaseConversion: 1000, DisplayName: "liter"},
	{Name: "tsp", Category: models.UnitVolume, BaseConversion: 4.92892, DisplayName: "teaspoon"},
	{Name: "tbsp", Category: models.UnitVolume, BaseConversion: 14.7868, DisplayName: "tablespoon"},
	{Name: "fl oz", Category: models.UnitVolume, BaseConversion: 29.5735, DisplayName: "fluid ounce"},
	{Name: "cup", Category: models.UnitVolume, BaseConversion: 236.588, DisplayName: "cup"},
	{Name: "pint", Category: models.UnitVolume, BaseConversion: 473.176, DisplayName: "pint"},
	{Name: "quart", Category: models.UnitVolume, BaseConversion: 946.353, DisplayName: "quart"},
	{Name: "gallon", Category: models.UnitVolume, BaseConversion: 3785.41, DisplayName: "gallon"},

	{Name: "g", Category: models.UnitWeight, BaseConversion: 1, DisplayName: "gram"},
	{Name: "kg", Category: models.UnitWeight, BaseConversion: 1000, DisplayName: "kilogram"},
	{Name: "oz", Category: models.UnitWeight, BaseConversion: 28.3495, DisplayName: "ounce"},
	{Name: "lb", Category: models.UnitWeight, BaseConversion: 453.592, DisplayName: "pound"},

	{Name: "piece", Category: models.UnitCount, BaseConversion: 1, DisplayName: "piece"},
	{Name: "dozen", Category: models.UnitCount, BaseConversion: 12, DisplayName: "dozen"},
	{Name: "each", Category: models.UnitCount, BaseConversion: 1, DisplayName: "each"},

	{Name: "pinch", Category: models.UnitSpecial, BaseConversion: 0.5, DisplayName: "pinch"},
	{Name: "dash", Category: models.UnitSpecial, BaseConversion: 0.625, DisplayName: "dash"},
	{Name: "clove", Category: models.UnitSpecial, BaseConversion: 1, DisplayName: "clove"},
	{Name: "slice", Category: models.UnitSpecial, BaseConversion: 1, DisplayName: "slice"},
	{Name: "can", Category: models.UnitContainer, BaseConversion: 400, DisplayName: "can"},
	{Name: "jar", Category: models.UnitContainer, BaseConversion: 500, DisplayName: "jar"},
	{Name: "package", Category: models.UnitContainer, BaseConversion: 1, DisplayName: "package"},
	{Name: "large", Category: models.UnitSpecial, BaseConversion: 1, DisplayName: "large"},
	{Name: "medium", Category: models.UnitSpecial, BaseConversion: 1, DisplayName: "medium"},
	{Name: "small", Category: models.UnitSpecial, BaseConversion: 1, DisplayName: "small"},
	{Name: "whole", Category: models.UnitSpecial, BaseConversion: 1, DisplayName: "whole"},
	{Name: "q.b.", Category: models.UnitSpecial, BaseConversion: 1, DisplayName: "to taste"},
	{Name: "to taste", Category: models.UnitSpecial, BaseConversion: 1, DisplayName: "to taste"},
	{Name: "handful", Category: models.UnitSpecial, BaseConversion: 1, DisplayName: "handful"},
	{Name: "bunch", Category: models.UnitSpecial, BaseConversion: 1, DisplayName: "bunch"},
	{Name: "sprig", Category: models.UnitSpecial, BaseConversion: 1, DisplayName: "sprig"},
}

var StandardIngredients = []models.Ingredient{
	{Name: "chicken breast", Category: models.CategoryProtein, Aliases: "chicken breasts,boneless chicken breast"},
	{Name: "ground beef", Category: models.CategoryProtein, Aliases: "ground meat,minced beef"},
	{Name: "salmon", Category: models.CategoryProtein, Aliases: "salmon fillet,fresh salmon"},
	{Name: "eggs", Category: models.CategoryProtein, Aliases: "egg,large eggs"},
	{Name: "tofu", Category: models.CategoryProtein, Aliases: "firm tofu,extra firm tofu"},
	{Name: "bacon", Category: models.CategoryProtein, Aliases: "sliced bacon,thick cut bacon"},

	{Name: "olive oil", Category: models.CategoryOil, Aliases: "extra-virgin olive oil,EVOO"},
	{Name: "vegetable oil", Category: models.CategoryOil, Aliases: "canola oil,cooking oil"},

	{Name: "oregano", Category: models.CategoryHerb, Aliases: "dried oregano,fresh oregano"},
	{Name: "cumin", Category: models.CategorySpice, Aliases: "whole cumin seeds,ground cumin,cumin seeds"},
	{Name: "coriander", Category: models.CategorySpice, Aliases: "whole coriander seeds,ground coriander,coriander seeds"},
	{Name: "cloves", Category: models.CategorySpice, Aliases: "ground cloves,whole cloves"},
	{Name: "basil", Category: models.CategoryHerb, Aliases: "fresh basil,dried basil"},
	{Name: "thyme", Category: models.CategoryHerb, Aliases: "fresh thyme,dried thyme"},
	{Name: "parsley", Category: models.CategoryHerb, Aliases: "fresh parsley,chopped parsley"},
	{Name: "paprika", Category: models.CategorySpice, Aliases: "sweet paprika,smoked paprika"},

	{Name: "brown sugar", Category: models.CategorySweetener, Aliases: "dark brown sugar,light brown sugar"},
	{Name: "honey", Category: models.CategorySweetener, Aliases: "raw honey,pure honey"},
	{Name: "sugar", Category: models.CategorySweetener, Aliases: "white sugar,granulated sugar"},
	{Name: "maple syrup", Category: models.CategorySweetener, Aliases: "pure maple syrup,real maple syrup,grade a maple syrup"},

	{Name: "vinegar", Category: models.CategoryCondiment, Aliases: "cider vinegar,apple cider vinegar,white vinegar"},
	{Name: "soy sauce", Category: models.CategoryCondiment, Aliases: "low sodium soy sauce"},
	{Name: "fish sauce", Category: models.CategoryCondiment, Aliases: "asian fish sauce"},
	{Name: "salsa", Category: models.CategoryCondiment, Aliases: "charred salsa verde,salsa verde"},

	{Name: "salt", Category: models.CategorySeasoning, Aliases: "kosher salt,table salt,sea salt"},
	{Name: "black pepper", Category: models.CategorySeasoning, Aliases: "pepper,ground black pepper"},

	{Name: "pineapple", Category: models.CategoryFruit, Aliases: "whole pineapple,fresh pineapple"},
	{Name: "apple", Category: models.CategoryFruit, Aliases: "apples,granny smith apple"},
	{Name: "banana", Category: models.CategoryFruit, Aliases: "bananas,ripe banana"},
	{Name: "lemon", Category: models.CategoryFruit, Aliases: "lemons,fresh lemon"},
	{Name: "lime", Category: models.CategoryFruit, Aliases: "limes,fresh lime"},
	{Name: "orange", Category: models.CategoryFruit, Aliases: "oranges,fresh orange"},

	{Name: "rice", Category: models.CategoryGrain, Aliases: "white rice,brown rice,jasmine rice"},
	{Name: "pasta", Category: models.CategoryGrain, Aliases: "spaghetti,penne,macaroni"},
	{Name: "bread", Category: models.CategoryGrain, Aliases: "white bread,whole wheat bread"},
	{Name: "flour", Category: models.CategoryGrain, Aliases: "all-purpose flour,wheat flour"},
	{Name: "quinoa", Category: models.CategoryGrain, Aliases: "quinoa grain,cooked quinoa"},
	{Name: "tortillas", Category: models.CategoryGrain, Aliases: "corn tortillas,flour tortillas"},

	{Name: "milk", Category: models.CategoryDairy, Aliases: "whole milk,2% milk,skim milk"},
	{Name: "butter", Category: models.CategoryDairy, Aliases: "unsalted butter,salted butter"},
	{Name: "cheese", Category: models.CategoryDairy, Aliases: "cheddar cheese,mozzarella cheese,cotija cheese,crumbled cotija cheese"},
	{Name: "yogurt", Category: models.CategoryDairy, Aliases: "plain yogurt,greek yogurt"},
	{Name: "cream", Category: models.CategoryDairy, Aliases: "heavy cream,whipping cream"},

	{Name: "onion", Category: models.CategoryVegetable, Aliases: "onions,yellow onion,white onion"},
	{Name: "garlic", Category: models.CategoryVegetable, Aliases: "garlic cloves,fresh garlic,medium garlic,minced garlic"},
	{Name: "tomato", Category: models.CategoryVegetable, Aliases: "tomatoes,fresh tomatoes"},
	{Name: "bell pepper", Category: models.CategoryVegetable, Aliases: "bell peppers,red bell pepper,green bell pepper"},
	{Name: "carrot", Category: models.CategoryVegetable, Aliases: "carrots,baby carrots"},
	{Name: "celery", Category: models.CategoryVegetable, Aliases: "celery stalks,celery ribs"},
	{Name: "potato", Category: models.CategoryVegetable, Aliases: "potatoes,russet potatoes"},
	{Name: "broccoli", Category: models.CategoryVegetable, Aliases: "broccoli florets,fresh broccoli"},
	{Name: "chiles", Category: models.CategoryVegetable, Aliases: "jalapeño,serrano chiles,ancho chiles,chipotle peppers"},
	{Name: "cilantro", Category: models.CategoryHerb, Aliases: "fresh cilantro,cilantro leaves"},
}

var DefaultCategories = []models.Category{
	{Name: string(models.CategoryProtein), SortOrder: 10},
	{Name: string(models.CategoryVegetable), SortOrder: 20},
	{Name: string(models.CategoryFruit), SortOrder: 30},
	{Name: string(models.CategoryDairy), SortOrder: 40},
	{Name: string(models.CategoryGrain), SortOrder: 50},
	{Name: string(models.CategoryHerb), SortOrder: 60},
	{Name: string(models.CategorySpice), SortOrder: 70},
	{Name: string(models.CategorySeasoning), SortOrder: 80},
	{Name: string(models.CategoryOil), SortOrder: 90},
	{Name: string(models.CategoryCondiment), SortOrder: 100},
	{Name: string(models.CategorySweetener), SortOrder: 110},
	{Name: string(models.CategoryOther), SortOrder: 999},
}

const DefaultProfileName = "My Store"

func Run(
	ctx context.Context,
	measurementRepo repository.MeasurementRepository,
	ingredientRepo repository.IngredientRepository,
	assignmentRepo repository.AssignmentRepository,
) error {
	measurementCount, err := measurementRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting measurements: %w", err)
	}
	if measurementCount == 0 {
		for _, unit := range StandardMeasurements {
			if _, err := measurementRepo.Create(ctx, unit); err != nil {
				return fmt.Errorf("seeding measurement %q: %w", unit.Name, err)
			}
		}
	}

	ingredientCount, err := ingredientRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting ingredients: %w", err)
	}
	if ingredientCount == 0 {
		for _, ingredient := range StandardIngredients {
			if _, err := ingredientRepo.Create(ctx, ingredient); err != nil {
				return fmt.Errorf("seeding ingredient %q: %w", ingredient.Name, err)
			}
		}
	}

	categoryCount, err := assignmentRepo.CountCategories(ctx)
	if err != nil {
		return fmt.Errorf("counting categories: %w", err)
	}
	if categoryCount == 0 {
		for _, category := range DefaultCategories {
			if _, err := assignmentRepo.CreateCategory(ctx, category); err != nil {
				return fmt.Errorf("seeding category %q: %w", category.Name, err)
			}
		}
	}

	profiles, err := assignmentRepo.FindAllProfiles(ctx)
	if err != nil {
		return fmt.Errorf("listing profiles: %w", err)
	}
	if len(profiles) == 0 {
		if _, err := assignmentRepo.CreateProfile(ctx, DefaultProfileName); err != nil {
			return fmt.Errorf("seeding default profile: %w", err)
		}
	}

	return nil
}
